package sim

import (
	"fmt"
	"math"
)

// State is the flat state vector handed between dynamics, integrators and
// controllers.
type State []float64

func (s State) Clone() State {
	return append(State(nil), s...)
}

// IsValid reports whether every entry is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

// Dynamics is an ODE system dX/dt = f(X, u, t).
type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Terminal is implemented by dynamics whose episodes can end early, e.g. a
// legged body that has fallen over.
type Terminal interface {
	Done(x State) bool
}

type EnergyComputer interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

// Metric accumulates a scalar over a run. Observe is called with the state
// before and after every step together with the control that produced it.
type Metric interface {
	Name() string
	Observe(prev, next State, u Control, dt float64)
	Value() float64
	Reset()
}

// Config bounds one episode.
type Config struct {
	Dt    float64
	Steps int
	// ValidateState ends the episode at the first non-finite state.
	ValidateState bool
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	return nil
}

type Result struct {
	Final       State
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Terminated  bool
	Errors      []error
}

// StepError marks the step at which an episode stopped being integrable.
type StepError struct {
	Step   int
	Time   float64
	Reason string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Reason)
}
