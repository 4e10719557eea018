package server

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/storage"
)

type Options struct {
	// ReuseFacades evaluates through a bench.Pool instead of building a
	// facade per request.
	ReuseFacades bool

	// Store receives a record of every evaluation. Nil disables history.
	Store storage.Store

	Logger *slog.Logger
}

// Service is the transport-independent core shared by the HTTP and gRPC
// front ends.
type Service struct {
	reg   *bench.Registry
	eval  bench.Evaluator
	store storage.Store
	log   *slog.Logger
}

func NewService(reg *bench.Registry, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	var eval bench.Evaluator = bench.Fresh{Registry: reg}
	if opts.ReuseFacades {
		eval = bench.NewPool(reg)
	}
	return &Service{reg: reg, eval: eval, store: opts.Store, log: log}
}

func (s *Service) Ping() string { return "PONG" }

func (s *Service) Benchmarks() []bench.Descriptor {
	names := s.reg.Names()
	out := make([]bench.Descriptor, 0, len(names))
	for _, name := range names {
		d, err := s.reg.Descriptor(name)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Evaluate runs x against the named benchmark and records the outcome.
func (s *Service) Evaluate(ctx context.Context, name string, x [][]float64, source string) ([]float64, error) {
	ctx, span := tracer.Start(ctx, "bench.Evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("benchmark", name),
		attribute.Int("rows", len(x)),
		attribute.String("source", source),
	)

	start := time.Now()
	y, err := s.eval.Evaluate(name, x)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn("evaluation failed", "benchmark", name, "rows", len(x), "kind", bench.KindOf(err), "error", err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "")

	evaluationDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	evaluationRows.WithLabelValues(name).Observe(float64(len(x)))
	s.log.Debug("evaluated", "benchmark", name, "rows", len(x), "elapsed", elapsed)

	if s.store != nil {
		rec := storage.NewRecord(name, source, x, y, elapsed)
		if err := s.store.Save(ctx, rec); err != nil {
			recordErrors.Inc()
			s.log.Error("record evaluation", "id", rec.ID, "error", err)
		}
	}
	return y, nil
}
