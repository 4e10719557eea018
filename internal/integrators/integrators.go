// Package integrators provides fixed-step ODE steppers for sim.Dynamics.
//
// Steppers keep scratch buffers between calls and are therefore owned by a
// single rollout at a time.
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynbench/internal/sim"
)

var factories = map[string]func() sim.Integrator{
	"euler":  func() sim.Integrator { return NewEuler() },
	"rk4":    func() sim.Integrator { return NewRK4() },
	"verlet": func() sim.Integrator { return NewVerlet() },
}

// New returns a fresh stepper by name.
func New(name string) (sim.Integrator, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// axpy stores x + a*y in dst. dst may alias x.
func axpy(dst, x sim.State, a float64, y sim.State) {
	for i := range dst {
		dst[i] = x[i] + a*y[i]
	}
}
