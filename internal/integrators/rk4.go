package integrators

import "github.com/san-kum/dynbench/internal/sim"

// RK4 is the classical fourth order Runge-Kutta step.
type RK4 struct {
	k   [4]sim.State
	tmp sim.State
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	if len(r.tmp) != n {
		r.tmp = make(sim.State, n)
		for i := range r.k {
			r.k[i] = make(sim.State, n)
		}
	}

	h := dt / 2
	copy(r.k[0], dyn.Derivative(x, u, t))
	axpy(r.tmp, x, h, r.k[0])
	copy(r.k[1], dyn.Derivative(r.tmp, u, t+h))
	axpy(r.tmp, x, h, r.k[1])
	copy(r.k[2], dyn.Derivative(r.tmp, u, t+h))
	axpy(r.tmp, x, dt, r.k[2])
	copy(r.k[3], dyn.Derivative(r.tmp, u, t+dt))

	out := make(sim.State, n)
	w := dt / 6
	for i, xi := range x {
		out[i] = xi + w*(r.k[0][i]+2*(r.k[1][i]+r.k[2][i])+r.k[3][i])
	}
	return out
}
