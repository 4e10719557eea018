package optim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/dynbench/internal/bench"
)

// BatchFunc evaluates a batch and returns one reward per row.
type BatchFunc func(x [][]float64) ([]float64, error)

type Profile struct {
	T       []float64
	Points  [][]float64
	Rewards []float64
	Best    int
}

func (p *Profile) BestPoint() ([]float64, float64) {
	return p.Points[p.Best], p.Rewards[p.Best]
}

// RandomDirection returns a unit vector drawn uniformly from the sphere.
func RandomDirection(rng *rand.Rand, dim int) []float64 {
	d := make([]float64, dim)
	for {
		norm := 0.0
		for i := range d {
			d[i] = rng.NormFloat64()
			norm += d[i] * d[i]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for i := range d {
				d[i] /= norm
			}
			return d
		}
	}
}

// Line returns steps points centre + t*dir for t evenly spaced in [-1, 1],
// with dir scaled so that t = ±1 touches the box boundary.
func Line(desc bench.Descriptor, dir []float64, steps int) ([]float64, [][]float64, error) {
	if len(dir) != desc.Dim {
		return nil, nil, fmt.Errorf("direction has %d entries, %s needs %d", len(dir), desc.Name, desc.Dim)
	}
	if steps < 2 {
		return nil, nil, fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	}

	center := desc.Center()
	reach := math.Inf(1)
	for i, d := range dir {
		if d == 0 {
			continue
		}
		half := (desc.Upper[i] - desc.Lower[i]) / 2
		reach = math.Min(reach, half/math.Abs(d))
	}
	if math.IsInf(reach, 1) {
		return nil, nil, fmt.Errorf("zero direction")
	}

	ts := make([]float64, steps)
	points := make([][]float64, steps)
	for k := 0; k < steps; k++ {
		t := -1 + 2*float64(k)/float64(steps-1)
		ts[k] = t
		p := make([]float64, desc.Dim)
		for i := range p {
			p[i] = clamp(center[i]+t*reach*dir[i], desc.Lower[i], desc.Upper[i])
		}
		points[k] = p
	}
	return ts, points, nil
}

// Sweep evaluates the line through the box centre along dir.
func Sweep(eval BatchFunc, desc bench.Descriptor, dir []float64, steps int) (*Profile, error) {
	ts, points, err := Line(desc, dir, steps)
	if err != nil {
		return nil, err
	}
	rewards, err := eval(points)
	if err != nil {
		return nil, err
	}
	if len(rewards) != len(points) {
		return nil, fmt.Errorf("got %d rewards for %d points", len(rewards), len(points))
	}
	return &Profile{T: ts, Points: points, Rewards: rewards, Best: argmax(rewards)}, nil
}

func argmax(v []float64) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
