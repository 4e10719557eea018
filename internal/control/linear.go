package control

import (
	"fmt"
	"math"

	"github.com/san-kum/dynbench/internal/sim"
)

// ObserveFunc maps a full simulator state to the policy's observation vector.
type ObserveFunc func(x sim.State) []float64

// Linear is a static linear policy u = clip(W·obs(x), -Limit, Limit).
type Linear struct {
	W       [][]float64
	Observe ObserveFunc
	Limit   float64
}

func NewLinear(w [][]float64, observe ObserveFunc, limit float64) *Linear {
	return &Linear{W: w, Observe: observe, Limit: limit}
}

func (l *Linear) Compute(x sim.State, t float64) sim.Control {
	obs := l.Observe(x)
	u := make(sim.Control, len(l.W))
	for i, row := range l.W {
		sum := 0.0
		for j := 0; j < len(row) && j < len(obs); j++ {
			sum += row[j] * obs[j]
		}
		if l.Limit > 0 {
			sum = math.Max(-l.Limit, math.Min(l.Limit, sum))
		}
		u[i] = sum
	}
	return u
}

// Reshape turns a flat row-major parameter vector into a rows x cols matrix.
func Reshape(params []float64, rows, cols int) ([][]float64, error) {
	if len(params) != rows*cols {
		return nil, fmt.Errorf("cannot reshape %d params into %dx%d", len(params), rows, cols)
	}
	w := make([][]float64, rows)
	for i := range w {
		w[i] = params[i*cols : (i+1)*cols]
	}
	return w, nil
}
