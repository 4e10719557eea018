package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/san-kum/dynbench/internal/bench"
)

// Client is a remote benchmark service.
type Client interface {
	Ping(ctx context.Context) (string, error)
	Eval(ctx context.Context, benchmark string, x [][]float64) ([]float64, error)
	Close() error
}

// NewClient connects to addr over the named transport ("http" or "grpc").
func NewClient(transport, addr string) (Client, error) {
	switch transport {
	case "", "http":
		return NewHTTPClient(addr), nil
	case "grpc":
		return NewGRPCClient(addr)
	default:
		return nil, fmt.Errorf("unknown transport: %s", transport)
	}
}

type HTTPClient struct {
	base string
	http *http.Client
}

func NewHTTPClient(addr string) *HTTPClient {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &HTTPClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/ping", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ping: %s", resp.Status)
	}
	return string(body), nil
}

func (c *HTTPClient) Eval(ctx context.Context, benchmark string, x [][]float64) ([]float64, error) {
	rows := make([]interface{}, len(x))
	for i, row := range x {
		rows[i] = row
	}
	payload, err := json.Marshal(EvalRequest{Benchmark: benchmark, X: rows})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/eval", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Kind == "" {
			return nil, fmt.Errorf("eval: %s", resp.Status)
		}
		return nil, bench.ErrorFromKind(e.Kind, e.Error)
	}

	var out EvalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode eval response: %w", err)
	}
	return out.Y, nil
}

type GRPCClient struct {
	conn *grpc.ClientConn
}

func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Ping(ctx context.Context) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, pingMethod, &emptypb.Empty{}, out); err != nil {
		return "", fromStatus(err)
	}
	return out.GetValue(), nil
}

func (c *GRPCClient) Eval(ctx context.Context, benchmark string, x [][]float64) ([]float64, error) {
	rows := make([]interface{}, len(x))
	for i, row := range x {
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		rows[i] = vals
	}
	req, err := structpb.NewStruct(map[string]interface{}{
		"benchmark": benchmark,
		"x":         rows,
	})
	if err != nil {
		return nil, &bench.InvalidInputFormatError{Reason: "encode request", Wrapped: err}
	}

	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, evalMethod, req, out); err != nil {
		return nil, fromStatus(err)
	}

	y := make([]float64, len(out.GetValues()))
	for i, v := range out.GetValues() {
		y[i] = v.GetNumberValue()
	}
	return y, nil
}
