package bench_test

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/dynbench/internal/bench"
)

// sumSim returns the row sum as cost and remembers what it was given.
type sumSim struct {
	log   *slog.Logger
	calls int
	seen  [][]float32
	short bool
	panic bool
}

func (s *sumSim) Evaluate(x [][]float32) ([]float64, error) {
	s.calls++
	s.seen = x
	s.log.Warn("simulator warning", "rows", len(x))
	if s.panic {
		panic("simulator exploded")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		for _, v := range row {
			out[i] += float64(v)
		}
	}
	if s.short {
		return out[:len(out)-1], nil
	}
	return out, nil
}

func sumFactory(sim *sumSim) bench.SimulatorFactory {
	return func(log *slog.Logger) (bench.Simulator, error) {
		log.Warn("loading model")
		sim.log = log
		return sim, nil
	}
}

// slowSim records the peak number of concurrent Evaluate calls.
type slowSim struct {
	inflight atomic.Int32
	mu       sync.Mutex
	peak     int32
}

func (s *slowSim) Evaluate(x [][]float32) ([]float64, error) {
	n := s.inflight.Add(1)
	defer s.inflight.Add(-1)

	s.mu.Lock()
	if n > s.peak {
		s.peak = n
	}
	s.mu.Unlock()

	time.Sleep(2 * time.Millisecond)
	return make([]float64, len(x)), nil
}

func (s *slowSim) Peak() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}

func zeros(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
