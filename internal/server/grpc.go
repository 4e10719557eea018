package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/storage"
)

const (
	benchServiceName = "dynbench.v1.Bench"
	pingMethod       = "/" + benchServiceName + "/Ping"
	evalMethod       = "/" + benchServiceName + "/Eval"
)

// BenchServer is the gRPC surface. Messages are protobuf well-known types:
// Eval takes a Struct {benchmark: string, x: list} and answers with a
// ListValue of rewards.
type BenchServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Eval(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

var benchServiceDesc = grpc.ServiceDesc{
	ServiceName: benchServiceName,
	HandlerType: (*BenchServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: pingHandler},
		{MethodName: "Eval", Handler: evalHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dynbench/v1/bench.proto",
}

func RegisterBenchServer(s grpc.ServiceRegistrar, srv BenchServer) {
	s.RegisterService(&benchServiceDesc, srv)
}

func pingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: pingMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func evalHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchServer).Eval(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: evalMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchServer).Eval(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type grpcServer struct {
	svc *Service
}

// NewGRPCServer returns a grpc.Server with the bench service registered.
func NewGRPCServer(svc *Service, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	RegisterBenchServer(s, &grpcServer{svc: svc})
	return s
}

func (g *grpcServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	observeRequest("grpc", "ping", nil)
	return wrapperspb.String(g.svc.Ping()), nil
}

func (g *grpcServer) Eval(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	ctx, span := tracer.Start(ctx, "grpc.eval")
	defer span.End()

	name := req.GetFields()["benchmark"].GetStringValue()
	list := req.GetFields()["x"].GetListValue()
	if list == nil {
		err := &bench.InvalidInputFormatError{Reason: "x must be a list"}
		observeRequest("grpc", "eval", err)
		return nil, toStatus(err)
	}

	x, err := bench.ToMatrix(list.AsSlice())
	if err != nil {
		observeRequest("grpc", "eval", err)
		return nil, toStatus(err)
	}

	y, err := g.svc.Evaluate(ctx, name, x, storage.SourceGRPC)
	observeRequest("grpc", "eval", err)
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]*structpb.Value, len(y))
	for i, v := range y {
		values[i] = structpb.NewNumberValue(v)
	}
	return &structpb.ListValue{Values: values}, nil
}

// toStatus converts err to a gRPC status carrying the error kind as a
// StringValue detail.
func toStatus(err error) error {
	kind := bench.KindOf(err)
	st := status.New(grpcCode(kind), err.Error())
	if withKind, derr := st.WithDetails(wrapperspb.String(kind)); derr == nil {
		st = withKind
	}
	return st.Err()
}

// fromStatus rebuilds a bench error from a gRPC error.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		if kind, ok := d.(*wrapperspb.StringValue); ok {
			return bench.ErrorFromKind(kind.GetValue(), st.Message())
		}
	}
	return err
}

// grpcCode maps an error kind to a status code. gRPC has no counterpart to
// HTTP 422, so dimension mismatches share InvalidArgument; clients recover the
// exact kind from the status detail.
func grpcCode(kind string) codes.Code {
	switch kind {
	case bench.KindUnknownBenchmark:
		return codes.NotFound
	case bench.KindInvalidInput, bench.KindDimensionMismatch:
		return codes.InvalidArgument
	case bench.KindOutOfBounds:
		return codes.OutOfRange
	default:
		return codes.Internal
	}
}
