package locomotion

import (
	"fmt"
	"sort"
)

type Task struct {
	Name      string
	ActionDim int
	ObsDim    int
	Legged    bool

	// ObserveHeight includes torso height in the observation. Swimmers
	// have no meaningful height.
	ObserveHeight bool

	Mass         float64
	PitchInertia float64
	JointInertia float64
	Gear         float64
	Stiffness    float64
	Damping      float64
	Coupling     float64
	Thrust       float64
	Drag         float64
	Lift         float64
	Reaction     float64
	Gravity      float64
	GroundK      float64
	GroundC      float64
	RestHeight   float64
	FootDepth    float64
	PitchK       float64
	PitchC       float64
	HealthyZ     [2]float64
	MaxPitch     float64
	AliveBonus   float64
	CtrlCost     float64
}

// Dim is the length of the flattened policy a benchmark row carries.
func (t Task) Dim() int { return t.ActionDim * t.ObsDim }

func (t Task) Joints() int { return t.ActionDim }

func base(name string, act, obs int) Task {
	return Task{
		Name:          name,
		ActionDim:     act,
		ObsDim:        obs,
		ObserveHeight: true,
		Mass:          1.0,
		PitchInertia:  0.5,
		JointInertia:  0.1,
		Gear:          1.0,
		Stiffness:     4.0,
		Damping:       0.2,
		Coupling:      1.0,
		Thrust:        1.0,
		Drag:          0.5,
		Reaction:      0.05,
		Gravity:       9.81,
		GroundK:       1000.0,
		GroundC:       20.0,
		RestHeight:    1.0,
		FootDepth:     0.02,
		PitchK:        8.0,
		PitchC:        1.0,
		MaxPitch:      1.0,
	}
}

var tasks = func() map[string]Task {
	swimmer := base("swimmer", 2, 8)
	swimmer.ObserveHeight = false
	swimmer.Thrust = 2.0
	swimmer.Drag = 0.8
	swimmer.CtrlCost = 1e-4

	hopper := base("hopper", 3, 11)
	hopper.Legged = true
	hopper.Gear = 2.0
	hopper.Thrust = 1.5
	hopper.Lift = 2.0
	hopper.RestHeight = 1.25
	hopper.HealthyZ = [2]float64{0.7, 2.0}
	hopper.MaxPitch = 0.2
	hopper.AliveBonus = 1.0
	hopper.CtrlCost = 1e-3

	walker := base("walker", 6, 17)
	walker.Legged = true
	walker.Gear = 2.0
	walker.Thrust = 1.5
	walker.Lift = 1.0
	walker.RestHeight = 1.25
	walker.HealthyZ = [2]float64{0.8, 2.0}
	walker.AliveBonus = 1.0
	walker.CtrlCost = 1e-3

	cheetah := base("cheetah", 6, 17)
	cheetah.Thrust = 3.0
	cheetah.Drag = 0.3
	cheetah.RestHeight = 0.6
	cheetah.CtrlCost = 0.1

	ant := base("ant", 8, 111)
	ant.Legged = true
	ant.Mass = 2.0
	ant.Thrust = 1.0
	ant.Lift = 0.5
	ant.RestHeight = 0.55
	ant.HealthyZ = [2]float64{0.2, 1.0}
	ant.MaxPitch = 1.2
	ant.AliveBonus = 1.0
	ant.CtrlCost = 0.5

	humanoid := base("humanoid", 17, 376)
	humanoid.Legged = true
	humanoid.Mass = 4.0
	humanoid.PitchInertia = 2.0
	humanoid.Gear = 2.0
	humanoid.Thrust = 0.8
	humanoid.Lift = 0.5
	humanoid.RestHeight = 1.4
	humanoid.HealthyZ = [2]float64{1.0, 2.0}
	humanoid.MaxPitch = 0.8
	humanoid.AliveBonus = 5.0
	humanoid.CtrlCost = 0.1

	m := make(map[string]Task)
	for _, t := range []Task{swimmer, hopper, walker, cheetah, ant, humanoid} {
		m[t.Name] = t
	}
	return m
}()

func Lookup(name string) (Task, error) {
	t, ok := tasks[name]
	if !ok {
		return Task{}, fmt.Errorf("unknown task: %s", name)
	}
	return t, nil
}

func Names() []string {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
