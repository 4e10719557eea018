// Package automation runs scripted sequences of benchmark evaluations
// described in YAML.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynbench/internal/bench"
)

// Scenario is a named list of evaluation steps.
//
//	name: smoke
//	steps:
//	  - benchmark: swimmer
//	    center: true
//	    random: 4
//	    seed: 1
//	  - benchmark: hopper
//	    x: [[0.1, 0.2, ...]]
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step evaluates one batch. Rows are X, then the box centre if Center is
// set, then Random rows sampled from the box with Seed.
type Step struct {
	Benchmark string      `yaml:"benchmark" validate:"required"`
	X         [][]float64 `yaml:"x,omitempty"`
	Center    bool        `yaml:"center,omitempty"`
	Random    int         `yaml:"random,omitempty" validate:"gte=0"`
	Seed      int64       `yaml:"seed,omitempty"`
	SaveAs    string      `yaml:"save_as,omitempty"`
}

type StepResult struct {
	Index     int
	Benchmark string
	Label     string
	X         [][]float64
	Rewards   []float64
	Elapsed   time.Duration
}

var validate = validator.New()

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := validate.Struct(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Run executes every step in order and stops at the first failure,
// returning the results gathered so far.
func Run(ctx context.Context, scenario *Scenario, reg *bench.Registry, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "benchmark", step.Benchmark)

		facade, err := reg.Create(step.Benchmark)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		x := step.points(facade.Descriptor())
		if len(x) == 0 {
			return results, fmt.Errorf("step %d: no points to evaluate", i+1)
		}

		start := time.Now()
		rewards, err := facade.Evaluate(x)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		label := step.SaveAs
		if label == "" {
			label = fmt.Sprintf("%s-%d", step.Benchmark, i+1)
		}
		results = append(results, StepResult{
			Index:     i,
			Benchmark: step.Benchmark,
			Label:     label,
			X:         x,
			Rewards:   rewards,
			Elapsed:   time.Since(start),
		})
	}

	return results, nil
}

func (s Step) points(desc bench.Descriptor) [][]float64 {
	x := make([][]float64, 0, len(s.X)+s.Random+1)
	x = append(x, s.X...)
	if s.Center {
		x = append(x, desc.Center())
	}
	if s.Random > 0 {
		x = append(x, desc.Sample(rand.New(rand.NewSource(s.Seed)), s.Random)...)
	}
	return x
}
