package locomotion

import (
	"math"
	"math/rand"

	"github.com/san-kum/dynbench/internal/sim"
)

const (
	idxX = iota
	idxZ
	idxPitch
	idxJoints
)

// Body is the reduced-order planar dynamics of one task. Joints are damped
// torsional springs with nearest-neighbour coupling; phase-lagged joint
// motion produces forward thrust. Legged bodies rest on a penalty ground
// contact and can fall.
type Body struct {
	task Task
	n    int
	half int
}

func NewBody(task Task) *Body {
	n := task.Joints()
	return &Body{task: task, n: n, half: idxJoints + n}
}

func (b *Body) StateDim() int   { return 2 * b.half }
func (b *Body) ControlDim() int { return b.n }

func (b *Body) q(x sim.State, i int) float64  { return x[idxJoints+i] }
func (b *Body) dq(x sim.State, i int) float64 { return x[b.half+idxJoints+i] }

// contact returns penetration depth below the rest height and the
// traction factor in [0, 1].
func (b *Body) contact(z float64) (float64, float64) {
	if !b.task.Legged {
		return 0, 1
	}
	pen := b.task.RestHeight - z
	if pen <= 0 {
		return 0, 0
	}
	return pen, math.Min(1, pen/b.task.FootDepth)
}

func (b *Body) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	tk := b.task
	dx := make(sim.State, len(x))
	copy(dx[:b.half], x[b.half:])

	z, pitch := x[idxZ], x[idxPitch]
	vx, vz, vpitch := x[b.half+idxX], x[b.half+idxZ], x[b.half+idxPitch]

	pen, traction := b.contact(z)

	wave := 0.0
	torqueSum := 0.0
	for i := 0; i < b.n; i++ {
		qi, dqi := b.q(x, i), b.dq(x, i)

		torque := 0.0
		if i < len(u) {
			torque = tk.Gear * u[i]
		}
		torqueSum += torque

		coupling := -2 * qi
		if i > 0 {
			coupling += b.q(x, i-1)
		}
		if i < b.n-1 {
			coupling += b.q(x, i+1)
			wave += dqi*b.q(x, i+1) - b.dq(x, i+1)*qi
		}

		dx[b.half+idxJoints+i] = (torque - tk.Stiffness*qi - tk.Damping*dqi + tk.Coupling*coupling) / tk.JointInertia
	}

	fx := traction*tk.Thrust*wave - tk.Drag*vx

	var fz, tau float64
	if tk.Legged {
		normal := math.Max(0, tk.GroundK*pen-tk.GroundC*vz)
		fz = normal + traction*tk.Lift*torqueSum/float64(b.n) - tk.Mass*tk.Gravity
		tau = -traction*tk.PitchK*pitch - tk.PitchC*vpitch + tk.Reaction*torqueSum
	} else {
		fz = -tk.GroundK*(z-tk.RestHeight) - tk.GroundC*vz
		tau = -tk.PitchK*pitch - tk.PitchC*vpitch + tk.Reaction*torqueSum
	}

	dx[b.half+idxX] = fx / tk.Mass
	dx[b.half+idxZ] = fz / tk.Mass
	dx[b.half+idxPitch] = tau / tk.PitchInertia

	return dx
}

// Done reports whether a legged body has left its healthy range.
func (b *Body) Done(x sim.State) bool {
	if !b.task.Legged {
		return false
	}
	z, pitch := x[idxZ], x[idxPitch]
	return z < b.task.HealthyZ[0] || z > b.task.HealthyZ[1] || math.Abs(pitch) > b.task.MaxPitch
}

func (b *Body) Energy(x sim.State) float64 {
	tk := b.task
	vx, vz, vpitch := x[b.half+idxX], x[b.half+idxZ], x[b.half+idxPitch]
	e := 0.5*tk.Mass*(vx*vx+vz*vz) + 0.5*tk.PitchInertia*vpitch*vpitch
	for i := 0; i < b.n; i++ {
		qi, dqi := b.q(x, i), b.dq(x, i)
		e += 0.5*tk.JointInertia*dqi*dqi + 0.5*tk.Stiffness*qi*qi
	}
	if tk.Legged {
		e += tk.Mass * tk.Gravity * x[idxZ]
	}
	return e
}

// Reset returns the initial state: standing at static equilibrium with
// uniform noise of the given scale on every coordinate except x.
func (b *Body) Reset(rng *rand.Rand, noise float64) sim.State {
	tk := b.task
	x := make(sim.State, b.StateDim())
	x[idxZ] = tk.RestHeight
	if tk.Legged {
		x[idxZ] -= tk.Mass * tk.Gravity / tk.GroundK
	}
	if rng == nil || noise == 0 {
		return x
	}
	for i := range x {
		if i == idxX {
			continue
		}
		x[i] += noise * (2*rng.Float64() - 1)
	}
	return x
}
