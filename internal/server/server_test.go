package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/locomotion"
	"github.com/san-kum/dynbench/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(strict bool) *bench.Registry {
	return bench.Default(bench.Options{StrictBounds: strict}, func(string) locomotion.Options {
		o := locomotion.DefaultOptions()
		o.Horizon = 20
		return o
	})
}

func testService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return NewService(testRegistry(false), opts)
}

func zeros(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func TestHandlePing(t *testing.T) {
	router := NewRouter(testService(t, Options{}))

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PONG", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPropagated(t *testing.T) {
	router := NewRouter(testService(t, Options{}))

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHandleEval(t *testing.T) {
	router := NewRouter(testService(t, Options{}))

	body, _ := json.Marshal(map[string]interface{}{
		"benchmark": "swimmer",
		"x":         zeros(3, 16),
	})
	req, _ := http.NewRequest("POST", "/eval", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp EvalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Y, 3)
}

func TestHandleEvalFlatVector(t *testing.T) {
	router := NewRouter(testService(t, Options{}))

	body := `{"benchmark": "hopper", "x": [` + strings.TrimSuffix(strings.Repeat("0,", 33), ",") + `]}`
	req, _ := http.NewRequest("POST", "/eval", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp EvalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Y, 1)
	assert.Greater(t, resp.Y[0], 0.0)
}

func TestHandleEvalErrors(t *testing.T) {
	router := NewRouter(NewService(testRegistry(true), Options{Logger: quietLogger()}))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "unknown benchmark",
			body:       `{"benchmark": "not_a_real_benchmark", "x": [[0]]}`,
			wantStatus: http.StatusNotFound,
			wantKind:   bench.KindUnknownBenchmark,
		},
		{
			name:       "dimension mismatch",
			body:       `{"benchmark": "swimmer", "x": [[0, 0, 0]]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   bench.KindDimensionMismatch,
		},
		{
			name:       "malformed body",
			body:       `{"benchmark": "swimmer", "x": `,
			wantStatus: http.StatusBadRequest,
			wantKind:   bench.KindInvalidInput,
		},
		{
			name:       "missing benchmark",
			body:       `{"x": [[0]]}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   bench.KindInvalidInput,
		},
		{
			name:       "non-numeric entry",
			body:       `{"benchmark": "swimmer", "x": [["a"]]}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   bench.KindInvalidInput,
		},
		{
			name:       "out of bounds",
			body:       `{"benchmark": "swimmer", "x": [[` + strings.TrimSuffix(strings.Repeat("2,", 16), ",") + `]]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   bench.KindOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", "/eval", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleBenchmarks(t *testing.T) {
	router := NewRouter(testService(t, Options{}))

	req, _ := http.NewRequest("GET", "/benchmarks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var infos []BenchmarkInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 6)

	byName := make(map[string]BenchmarkInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, 6392, byName["humanoid"].Dim)
	assert.Equal(t, -1.8, byName["walker"].Lower)
	assert.Equal(t, 0.9, byName["walker"].Upper)
	assert.Equal(t, "continuous", byName["ant"].Kind)
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewRouter(testService(t, Options{}))

	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dynbench_requests_total")
}

func TestServiceRecordsEvaluations(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := testService(t, Options{Store: store})

	_, err := svc.Evaluate(context.Background(), "swimmer", zeros(2, 16), storage.SourceCLI)
	require.NoError(t, err)
	_, err = svc.Evaluate(context.Background(), "swimmer", zeros(1, 3), storage.SourceCLI)
	require.Error(t, err)

	records, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "swimmer", records[0].Benchmark)
	assert.Equal(t, 2, records[0].Rows)
	assert.Equal(t, 16, records[0].Dim)
	assert.Equal(t, storage.SourceCLI, records[0].Source)
}

func TestServiceReuseFacades(t *testing.T) {
	svc := testService(t, Options{ReuseFacades: true})
	pool, ok := svc.eval.(*bench.Pool)
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		_, err := svc.Evaluate(context.Background(), "swimmer", zeros(1, 16), storage.SourceHTTP)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, pool.Len())
}

func TestHTTPClientRoundTrip(t *testing.T) {
	ts := httptest.NewServer(NewRouter(testService(t, Options{})))
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	ctx := context.Background()

	pong, err := client.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)

	y, err := client.Eval(ctx, "swimmer", zeros(2, 16))
	require.NoError(t, err)
	assert.Len(t, y, 2)

	_, err = client.Eval(ctx, "not_a_real_benchmark", zeros(1, 16))
	assert.True(t, errors.Is(err, bench.ErrUnknownBenchmark), "got %v", err)

	_, err = client.Eval(ctx, "swimmer", zeros(1, 15))
	assert.True(t, errors.Is(err, bench.ErrDimensionMismatch), "got %v", err)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("http", "localhost:9000")
	require.NoError(t, err)
	assert.IsType(t, &HTTPClient{}, c)

	_, err = NewClient("carrier-pigeon", "localhost:9000")
	assert.Error(t, err)
}
