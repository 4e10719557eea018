package control

import (
	"testing"

	"github.com/san-kum/dynbench/internal/sim"
)

func identity(x sim.State) []float64 { return x }

func TestLinear(t *testing.T) {
	w := [][]float64{{1.0, 2.0}, {-1.0, 0.5}}
	ctrl := NewLinear(w, identity, 0)

	u := ctrl.Compute(sim.State{0.0, 0.0}, 0.0)
	if u[0] != 0 || u[1] != 0 {
		t.Errorf("expected zero control at origin, got %v", u)
	}

	u = ctrl.Compute(sim.State{1.0, 1.0}, 0.0)
	if u[0] != 3.0 || u[1] != -0.5 {
		t.Errorf("expected [3 -0.5], got %v", u)
	}
}

func TestLinearClip(t *testing.T) {
	ctrl := NewLinear([][]float64{{10.0}, {-10.0}}, identity, 1.0)

	u := ctrl.Compute(sim.State{1.0}, 0.0)
	if u[0] != 1.0 || u[1] != -1.0 {
		t.Errorf("expected controls clipped to [1 -1], got %v", u)
	}
}

func TestReshape(t *testing.T) {
	w, err := Reshape([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatalf("reshape failed: %v", err)
	}
	if len(w) != 2 || len(w[0]) != 3 {
		t.Fatalf("expected 2x3, got %dx%d", len(w), len(w[0]))
	}
	if w[1][0] != 4 || w[0][2] != 3 {
		t.Errorf("expected row-major layout, got %v", w)
	}

	if _, err := Reshape([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Error("expected error for size mismatch")
	}
}
