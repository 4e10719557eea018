package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	"github.com/san-kum/dynbench/internal/bench"
)

var tracer = otel.Tracer("dynbench.server")

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dynbench_requests_total",
		Help: "Requests handled, by transport, method and outcome kind.",
	}, []string{"transport", "method", "kind"})

	evaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dynbench_evaluation_duration_seconds",
		Help:    "Wall time of one batch evaluation.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"benchmark"})

	evaluationRows = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dynbench_evaluation_rows",
		Help:    "Rows per evaluated batch.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"benchmark"})

	recordErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dynbench_record_errors_total",
		Help: "Evaluations that could not be written to history.",
	})
)

func observeRequest(transport, method string, err error) {
	kind := "ok"
	if err != nil {
		kind = bench.KindOf(err)
	}
	requestsTotal.WithLabelValues(transport, method, kind).Inc()
}
