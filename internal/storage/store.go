package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SourceCLI  = "cli"
	SourceHTTP = "http"
	SourceGRPC = "grpc"
)

// Record is one stored evaluation.
type Record struct {
	ID        string        `json:"id"`
	Benchmark string        `json:"benchmark"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	Rows      int           `json:"rows"`
	Dim       int           `json:"dim"`
	Rewards   []float64     `json:"rewards"`
	Elapsed   time.Duration `json:"elapsed"`
	Inputs    [][]float64   `json:"-"`
}

func NewRecord(benchmark, source string, x [][]float64, rewards []float64, elapsed time.Duration) Record {
	dim := 0
	if len(x) > 0 {
		dim = len(x[0])
	}
	return Record{
		ID:        uuid.NewString(),
		Benchmark: benchmark,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Rows:      len(x),
		Dim:       dim,
		Rewards:   rewards,
		Elapsed:   elapsed,
		Inputs:    x,
	}
}

// Best returns the index and value of the highest reward, or -1.
func (r Record) Best() (int, float64) {
	best := -1
	for i, v := range r.Rewards {
		if best < 0 || v > r.Rewards[best] {
			best = i
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, r.Rewards[best]
}

type Store interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, bool, error)
	// List returns records newest first; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}
