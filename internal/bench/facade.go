package bench

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/dynbench/internal/diag"
)

// Simulator is the engine behind a benchmark. It receives a batch of
// float32 rows and returns one cost per row.
type Simulator interface {
	Evaluate(x [][]float32) ([]float64, error)
}

// SimulatorFactory builds a simulator that reports diagnostics to log.
type SimulatorFactory func(log *slog.Logger) (Simulator, error)

type Options struct {
	// StrictBounds rejects rows outside the descriptor's box instead of
	// passing them to the simulator.
	StrictBounds bool

	// Diagnostics receives simulator logs. Nil discards them.
	Diagnostics *diag.Handler
}

type Facade struct {
	desc   Descriptor
	sim    Simulator
	strict bool
	diag   *diag.Handler
}

// NewFacade validates desc and constructs the simulator with diagnostics
// muted.
func NewFacade(desc Descriptor, factory SimulatorFactory, opts Options) (*Facade, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("%s: nil simulator factory", desc.Name)
	}
	h := opts.Diagnostics
	if h == nil {
		h = diag.Discard()
	}

	sim, err := diag.Quiet(h, func() (Simulator, error) {
		return factory(slog.New(h).With("benchmark", desc.Name))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: create simulator: %w", desc.Name, err)
	}
	if sim == nil {
		return nil, fmt.Errorf("%s: factory returned no simulator", desc.Name)
	}

	return &Facade{desc: desc.Clone(), sim: sim, strict: opts.StrictBounds, diag: h}, nil
}

func (f *Facade) Descriptor() Descriptor { return f.desc.Clone() }

func (f *Facade) Name() string { return f.desc.Name }

// Evaluate returns one reward per row of x, in row order. The simulator is
// called once with the whole batch.
func (f *Facade) Evaluate(x [][]float64) ([]float64, error) {
	batch, err := f.prepare(x)
	if err != nil {
		return nil, err
	}

	costs, err := diag.Quiet(f.diag, func() ([]float64, error) {
		return f.sim.Evaluate(batch)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.desc.Name, err)
	}
	if len(costs) != len(batch) {
		return nil, fmt.Errorf("%s: simulator returned %d values for %d rows", f.desc.Name, len(costs), len(batch))
	}

	rewards := make([]float64, len(costs))
	for i, c := range costs {
		rewards[i] = -c
	}
	return rewards, nil
}

// EvaluateOne evaluates a single point as a one-row batch.
func (f *Facade) EvaluateOne(x []float64) (float64, error) {
	y, err := f.Evaluate([][]float64{x})
	if err != nil {
		return 0, err
	}
	return y[0], nil
}

func (f *Facade) prepare(x [][]float64) ([][]float32, error) {
	if len(x) == 0 {
		return nil, &InvalidInputFormatError{Reason: "empty batch"}
	}

	batch := make([][]float32, len(x))
	for i, row := range x {
		if len(row) != f.desc.Dim {
			return nil, &DimensionMismatchError{Benchmark: f.desc.Name, Row: i, Want: f.desc.Dim, Got: len(row)}
		}
		out := make([]float32, len(row))
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &InvalidInputFormatError{Reason: fmt.Sprintf("x[%d][%d] is not finite", i, j)}
			}
			if f.strict && (v < f.desc.Lower[j] || v > f.desc.Upper[j]) {
				return nil, &OutOfBoundsError{
					Benchmark: f.desc.Name,
					Row:       i,
					Col:       j,
					Value:     v,
					Lower:     f.desc.Lower[j],
					Upper:     f.desc.Upper[j],
				}
			}
			out[j] = float32(v)
			if math.IsInf(float64(out[j]), 0) {
				return nil, &InvalidInputFormatError{Reason: fmt.Sprintf("x[%d][%d] overflows float32", i, j)}
			}
		}
		batch[i] = out
	}
	return batch, nil
}
