package integrators

import "github.com/san-kum/dynbench/internal/sim"

// Euler is the explicit first order step x' = x + dt*f(x).
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (Euler) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	out := make(sim.State, len(x))
	axpy(out, x, dt, dyn.Derivative(x, u, t))
	return out
}
