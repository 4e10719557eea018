// Package metrics provides per-step accumulators used to score rollouts.
package metrics

import "github.com/san-kum/dynbench/internal/sim"

// Progress sums forward velocity (dx/dt) of one state coordinate per step.
type Progress struct {
	name  string
	index int
	sum   float64
}

func NewProgress(index int) *Progress {
	return &Progress{name: "progress", index: index}
}

func (p *Progress) Name() string { return p.name }

func (p *Progress) Observe(prev, next sim.State, u sim.Control, dt float64) {
	if p.index >= len(prev) || dt <= 0 {
		return
	}
	p.sum += (next[p.index] - prev[p.index]) / dt
}

func (p *Progress) Value() float64 { return p.sum }

func (p *Progress) Reset() { p.sum = 0 }

// Alive pays a constant bonus for every step survived.
type Alive struct {
	name  string
	bonus float64
	steps int
}

func NewAlive(bonus float64) *Alive {
	return &Alive{name: "alive", bonus: bonus}
}

func (a *Alive) Name() string { return a.name }

func (a *Alive) Observe(prev, next sim.State, u sim.Control, dt float64) {
	a.steps++
}

func (a *Alive) Value() float64 { return a.bonus * float64(a.steps) }

func (a *Alive) Reset() { a.steps = 0 }

// ControlCost sums squared actuation over the run.
type ControlCost struct {
	name string
	sum  float64
}

func NewControlCost() *ControlCost {
	return &ControlCost{name: "control_cost"}
}

func (c *ControlCost) Name() string { return c.name }

func (c *ControlCost) Observe(prev, next sim.State, u sim.Control, dt float64) {
	for _, val := range u {
		c.sum += val * val
	}
}

func (c *ControlCost) Value() float64 { return c.sum }

func (c *ControlCost) Reset() { c.sum = 0 }
