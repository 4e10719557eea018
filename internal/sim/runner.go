package sim

import (
	"context"
	"fmt"
	"math"
)

// Runner steps one dynamics/controller pair through an episode.
type Runner struct {
	dyn        Dynamics
	integrator Integrator
	controller Controller
	metrics    []Metric
}

func NewRunner(dyn Dynamics, integrator Integrator, controller Controller, metrics ...Metric) *Runner {
	return &Runner{dyn: dyn, integrator: integrator, controller: controller, metrics: metrics}
}

// Run steps from x0 for at most cfg.Steps steps. It stops early when the
// dynamics report a terminal state or, with ValidateState, when the state
// diverges; divergence lands in Result.Errors rather than the returned error.
func (r *Runner) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(x0) != r.dyn.StateDim() {
		return nil, fmt.Errorf("initial state has %d entries, dynamics expect %d", len(x0), r.dyn.StateDim())
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	terminal, _ := r.dyn.(Terminal)
	res := &Result{Metrics: make(map[string]float64, len(r.metrics))}
	x := x0.Clone()
	e0 := r.energy(x)
	t := 0.0

	for step := 0; step < cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		u := r.controller.Compute(x, t)
		next := r.integrator.Step(r.dyn, x, u, t, cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			res.Errors = append(res.Errors, &StepError{Step: step, Time: t, Reason: "state is not finite"})
			res.Terminated = true
			break
		}
		for _, m := range r.metrics {
			m.Observe(x, next, u, cfg.Dt)
		}
		x, t = next, t+cfg.Dt
		res.StepsTaken++
		if terminal != nil && terminal.Done(x) {
			res.Terminated = true
			break
		}
	}

	res.Final = x
	if e0 != 0 {
		res.EnergyDrift = math.Abs(r.energy(x)-e0) / math.Abs(e0)
	}
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

func (r *Runner) energy(x State) float64 {
	if ec, ok := r.dyn.(EnergyComputer); ok {
		return ec.Energy(x)
	}
	return 0
}
