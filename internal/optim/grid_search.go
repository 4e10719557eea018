package optim

import (
	"context"
	"fmt"
)

// GridSearch varies a few coordinates of a base point over fixed levels
// and keeps the best-rewarded combination.
type GridSearch struct {
	coords []int
	ranges [][]float64
}

func NewGridSearch(coords []int, ranges [][]float64) *GridSearch {
	return &GridSearch{coords: coords, ranges: ranges}
}

// Levels returns n evenly spaced values in [lo, hi].
func Levels(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point in one batch and returns the best
// point with its reward.
func (g *GridSearch) Search(ctx context.Context, eval BatchFunc, base []float64) ([]float64, float64, error) {
	if len(g.coords) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d coordinates but %d ranges", len(g.coords), len(g.ranges))
	}
	for _, c := range g.coords {
		if c < 0 || c >= len(base) {
			return nil, 0, fmt.Errorf("coordinate %d outside [0, %d)", c, len(base))
		}
	}

	points := make([][]float64, 0, g.Size())
	if err := g.enumerate(ctx, 0, append([]float64(nil), base...), &points); err != nil {
		return nil, 0, err
	}
	if len(points) == 0 {
		return nil, 0, fmt.Errorf("empty grid")
	}

	rewards, err := eval(points)
	if err != nil {
		return nil, 0, err
	}
	if len(rewards) != len(points) {
		return nil, 0, fmt.Errorf("got %d rewards for %d points", len(rewards), len(points))
	}

	best := argmax(rewards)
	return points[best], rewards[best], nil
}

func (g *GridSearch) enumerate(ctx context.Context, depth int, current []float64, out *[][]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.coords) {
		*out = append(*out, append([]float64(nil), current...))
		return nil
	}

	c := g.coords[depth]
	for _, val := range g.ranges[depth] {
		current[c] = val
		if err := g.enumerate(ctx, depth+1, current, out); err != nil {
			return err
		}
	}
	return nil
}
