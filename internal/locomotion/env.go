package locomotion

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/dynbench/internal/control"
	"github.com/san-kum/dynbench/internal/diag"
	"github.com/san-kum/dynbench/internal/integrators"
	"github.com/san-kum/dynbench/internal/metrics"
	"github.com/san-kum/dynbench/internal/sim"
)

type Options struct {
	Horizon    int
	Episodes   int
	Dt         float64
	Integrator string
	ResetNoise float64
	Seed       int64
	// Workers bounds how many rows roll out concurrently. Zero means one.
	Workers int
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Horizon:    1000,
		Episodes:   1,
		Dt:         0.01,
		Integrator: "rk4",
		ResetNoise: 0.005,
		Workers:    runtime.GOMAXPROCS(0),
	}
}

// Env scores linear policies on one task. Reset noise is reseeded from
// Options.Seed for every row, so a row scores the same wherever it sits in
// a batch.
type Env struct {
	task Task
	opts Options
	log  *slog.Logger
}

func NewEnv(task Task, opts Options) (*Env, error) {
	if opts.Horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", opts.Horizon)
	}
	if opts.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", opts.Episodes)
	}
	if opts.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", opts.Dt)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", opts.Workers)
	}
	if _, err := integrators.New(opts.Integrator); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(diag.Discard())
	}
	return &Env{
		task: task,
		opts: opts,
		log:  log.With("task", task.Name),
	}, nil
}

func (e *Env) Task() Task { return e.task }

// Evaluate returns the mean episode cost of every row, in row order. Rows
// are rolled out on up to Options.Workers goroutines.
func (e *Env) Evaluate(x [][]float32) ([]float64, error) {
	for i, row := range x {
		if len(row) != e.task.Dim() {
			return nil, fmt.Errorf("row %d: policy has %d params, task %s needs %d", i, len(row), e.task.Name, e.task.Dim())
		}
	}

	out := make([]float64, len(x))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(e.opts.Workers, 1))
	for i, row := range x {
		g.Go(func() error {
			params := make([]float64, len(row))
			for j, v := range row {
				params[j] = float64(v)
			}
			ret, err := e.meanReturn(ctx, params)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = -ret
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Env) meanReturn(ctx context.Context, params []float64) (float64, error) {
	w, err := control.Reshape(params, e.task.ActionDim, e.task.ObsDim)
	if err != nil {
		return 0, err
	}

	rng := rand.New(rand.NewSource(e.opts.Seed))
	total := 0.0
	for ep := 0; ep < e.opts.Episodes; ep++ {
		ret, err := e.episode(ctx, w, rng)
		if err != nil {
			return 0, err
		}
		total += ret
	}
	return total / float64(e.opts.Episodes), nil
}

func (e *Env) episode(ctx context.Context, w [][]float64, rng *rand.Rand) (float64, error) {
	task := e.task
	body := NewBody(task)
	integ, err := integrators.New(e.opts.Integrator)
	if err != nil {
		return 0, err
	}
	policy := control.NewLinear(w, func(x sim.State) []float64 { return Observe(task, x) }, 1.0)

	progress := metrics.NewProgress(idxX)
	alive := metrics.NewAlive(task.AliveBonus)
	effort := metrics.NewControlCost()

	cfg := sim.Config{Dt: e.opts.Dt, Steps: e.opts.Horizon, ValidateState: true}
	runner := sim.NewRunner(body, integ, policy, progress, alive, effort)
	res, err := runner.Run(ctx, body.Reset(rng, e.opts.ResetNoise), cfg)
	if err != nil {
		return 0, err
	}
	for _, simErr := range res.Errors {
		e.log.Warn("episode diverged, truncating", "error", simErr, "steps", res.StepsTaken)
	}
	if res.EnergyDrift > 10 {
		e.log.Debug("large energy change", "drift", res.EnergyDrift)
	}

	return progress.Value() + alive.Value() - task.CtrlCost*effort.Value(), nil
}
