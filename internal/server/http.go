package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/storage"
)

type EvalRequest struct {
	Benchmark string        `json:"benchmark" binding:"required"`
	X         []interface{} `json:"x" binding:"required"`
}

type EvalResponse struct {
	Y []float64 `json:"y"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type BenchmarkInfo struct {
	Name  string  `json:"name"`
	Dim   int     `json:"dim"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Kind  string  `json:"kind"`
}

type Handlers struct {
	svc *Service
	log *slog.Logger
}

func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc, log: svc.log}
}

// NewRouter returns a gin engine serving ping, eval, the benchmark list
// and prometheus metrics.
func NewRouter(svc *Service) *gin.Engine {
	h := NewHandlers(svc)

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	r.GET("/ping", h.HandlePing)
	r.POST("/eval", h.HandleEval)
	r.GET("/benchmarks", h.HandleBenchmarks)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func (h *Handlers) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := getOrCreateRequestID(c)
		start := time.Now()
		c.Next()
		h.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", requestID,
		)
	}
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// HandlePing handles GET /ping.
func (h *Handlers) HandlePing(c *gin.Context) {
	observeRequest("http", "ping", nil)
	c.String(http.StatusOK, h.svc.Ping())
}

// HandleEval handles POST /eval.
//
//	200 OK: EvalResponse
//	400 Bad Request: malformed body or matrix
//	404 Not Found: unknown benchmark
//	422 Unprocessable Entity: wrong row width, or out of bounds in strict mode
func (h *Handlers) HandleEval(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "http.eval")
	defer span.End()

	var req EvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		err = &bench.InvalidInputFormatError{Reason: "request body", Wrapped: err}
		observeRequest("http", "eval", err)
		writeError(c, err)
		return
	}

	x, err := bench.ToMatrix(req.X)
	if err != nil {
		observeRequest("http", "eval", err)
		writeError(c, err)
		return
	}

	y, err := h.svc.Evaluate(ctx, req.Benchmark, x, storage.SourceHTTP)
	observeRequest("http", "eval", err)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, EvalResponse{Y: y})
}

// HandleBenchmarks handles GET /benchmarks. Bounds are reported as the
// box limits of the first coordinate; every catalog box is uniform.
func (h *Handlers) HandleBenchmarks(c *gin.Context) {
	descs := h.svc.Benchmarks()
	out := make([]BenchmarkInfo, 0, len(descs))
	for _, d := range descs {
		out = append(out, BenchmarkInfo{
			Name:  d.Name,
			Dim:   d.Dim,
			Lower: d.Lower[0],
			Upper: d.Upper[0],
			Kind:  d.Kind.String(),
		})
	}
	observeRequest("http", "benchmarks", nil)
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	kind := bench.KindOf(err)
	c.JSON(httpStatus(kind), ErrorResponse{Error: err.Error(), Kind: kind})
}

func httpStatus(kind string) int {
	switch kind {
	case bench.KindUnknownBenchmark:
		return http.StatusNotFound
	case bench.KindInvalidInput:
		return http.StatusBadRequest
	case bench.KindDimensionMismatch, bench.KindOutOfBounds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
