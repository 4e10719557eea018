// Package control provides feedback controllers for dynamical systems.
//
// Controllers implement the [sim.Controller] interface to compute
// control inputs from system state:
//
//   - [Linear]: linear observation feedback u = clip(W·obs(x))
//
// # Usage
//
//	w, _ := control.Reshape(params, actDim, obsDim)
//	policy := control.NewLinear(w, observe, 1.0)
//	r := sim.NewRunner(body, integ, policy, metrics...)
//	// Compute is called once per timestep
package control
