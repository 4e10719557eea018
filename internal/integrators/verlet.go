package integrators

import "github.com/san-kum/dynbench/internal/sim"

// Verlet is velocity Verlet for states laid out as [q..., qdot...].
// The second force evaluation uses the new positions with the old velocities,
// so damping terms are only first order accurate.
type Verlet struct {
	probe sim.State
}

func NewVerlet() *Verlet { return &Verlet{} }

func (v *Verlet) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	m := n / 2
	if len(v.probe) != n {
		v.probe = make(sim.State, n)
	}

	a0 := dyn.Derivative(x, u, t)[m:]
	q, qd := x[:m], x[m:]

	out := make(sim.State, n)
	for i := range q {
		out[i] = q[i] + dt*(qd[i]+0.5*dt*a0[i])
	}
	copy(v.probe[:m], out[:m])
	copy(v.probe[m:], qd)

	a1 := dyn.Derivative(v.probe, u, t+dt)[m:]
	axpy(out[m:], qd, dt/2, a0)
	axpy(out[m:], out[m:], dt/2, a1)
	return out
}
