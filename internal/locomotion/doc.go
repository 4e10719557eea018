// Package locomotion implements the planar locomotion tasks behind the
// benchmark suite.
//
// Each [Task] describes a jointed body driven by ActionDim joint torques and
// observed through an ObsDim feature vector. A benchmark input is a linear
// policy W (ActionDim x ObsDim, row-major); [Env] rolls that policy out on a
// [Body] and reports the episode cost, i.e. the negated return:
//
//	return = Σ forward velocity + alive bonus - CtrlCost·Σ|u|²
//
// Legged tasks end early when the torso leaves its healthy height range or
// pitches past MaxPitch.
//
// # State Layout
//
// Body states are split into positions and velocities so that the
// position/velocity steppers in package integrators apply:
//
//	[x, z, pitch, q_1..q_n, vx, vz, vpitch, dq_1..dq_n]
package locomotion
