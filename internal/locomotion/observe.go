package locomotion

import (
	"math"

	"github.com/san-kum/dynbench/internal/sim"
)

// Observe builds the task's observation vector from a body state. The layout
// starts with posture and velocities (torso x excluded); larger observation
// spaces continue with joint sin/cos, contact terms and joint power, and are
// zero padded after that.
func Observe(task Task, x sim.State) []float64 {
	n := task.Joints()
	half := idxJoints + n
	obs := make([]float64, 0, task.ObsDim)

	if task.ObserveHeight {
		obs = append(obs, x[idxZ])
	}
	obs = append(obs, x[idxPitch])
	obs = append(obs, x[idxJoints:half]...)
	obs = append(obs, x[half:]...)

	if len(obs) >= task.ObsDim {
		return obs[:task.ObsDim]
	}

	q := x[idxJoints:half]
	dq := x[half+idxJoints:]
	for _, v := range q {
		obs = append(obs, math.Sin(v))
	}
	for _, v := range q {
		obs = append(obs, math.Cos(v))
	}
	pen := math.Max(0, task.RestHeight-x[idxZ])
	obs = append(obs, pen, task.GroundK*pen/(task.Mass*task.Gravity))
	for i := range q {
		obs = append(obs, q[i]*dq[i])
	}

	if len(obs) >= task.ObsDim {
		return obs[:task.ObsDim]
	}
	return append(obs, make([]float64, task.ObsDim-len(obs))...)
}
