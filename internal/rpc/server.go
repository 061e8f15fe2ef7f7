// Package rpc exposes the shared generator as the gRPC service
// sparkyrng.v1.Random. Messages are protobuf well-known wrapper types, so no
// generated code is needed.
package rpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/sparkyrng/internal/logger"
	"github.com/xtding233/sparkyrng/internal/service"
	"github.com/xtding233/sparkyrng/random"
	"github.com/xtding233/sparkyrng/xoshiro"
)

const ServiceName = "sparkyrng.v1.Random"

// RandomServer is the server API of sparkyrng.v1.Random.
type RandomServer interface {
	Next(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	Bits(context.Context, *wrapperspb.Int32Value) (*wrapperspb.UInt64Value, error)
	Uint32(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error)
	Uint64N(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.UInt64Value, error)
	F52(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error)
	F53(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error)
	Discard(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error)
	Seed(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error)
	State(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// Server implements RandomServer over a service.Generator.
type Server struct {
	gen *service.Generator
}

func NewServer(gen *service.Generator) *Server {
	return &Server{gen: gen}
}

func (s *Server) Next(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	return wrapperspb.UInt64(s.gen.Next()), nil
}

func (s *Server) Bits(_ context.Context, in *wrapperspb.Int32Value) (*wrapperspb.UInt64Value, error) {
	v, err := s.gen.Bits(int(in.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(v), nil
}

func (s *Server) Uint32(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error) {
	return wrapperspb.UInt32(s.gen.Uint32()), nil
}

func (s *Server) Uint64N(_ context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.UInt64Value, error) {
	v, err := s.gen.Uint64n(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(v), nil
}

func (s *Server) F52(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error) {
	return wrapperspb.Double(s.gen.F52()), nil
}

func (s *Server) F53(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error) {
	return wrapperspb.Double(s.gen.F53()), nil
}

func (s *Server) Discard(_ context.Context, in *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	if err := s.gen.Discard(in.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) Seed(_ context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error) {
	st := s.gen.Seed(in.GetValue())
	logger.Info().Uint64("seed", in.GetValue()).Msg("reseeded over grpc")
	return wrapperspb.String(st.String()), nil
}

func (s *Server) State(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.gen.State().String()), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, random.ErrInvalidBound),
		errors.Is(err, random.ErrInvalidBitWidth),
		errors.Is(err, service.ErrDiscardTooLarge),
		errors.Is(err, xoshiro.ErrZeroState):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// unary builds the method descriptor for one RPC.
func unary[Req, Resp proto.Message](name string, newReq func() Req, call func(RandomServer, context.Context, Req) (Resp, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RandomServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RandomServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func newEmpty() *emptypb.Empty            { return new(emptypb.Empty) }
func newUInt64() *wrapperspb.UInt64Value { return new(wrapperspb.UInt64Value) }
func newInt32() *wrapperspb.Int32Value   { return new(wrapperspb.Int32Value) }

// ServiceDesc describes sparkyrng.v1.Random for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RandomServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Next", newEmpty, RandomServer.Next),
		unary("Bits", newInt32, RandomServer.Bits),
		unary("Uint32", newEmpty, RandomServer.Uint32),
		unary("Uint64N", newUInt64, RandomServer.Uint64N),
		unary("F52", newEmpty, RandomServer.F52),
		unary("F53", newEmpty, RandomServer.F53),
		unary("Discard", newUInt64, RandomServer.Discard),
		unary("Seed", newUInt64, RandomServer.Seed),
		unary("State", newEmpty, RandomServer.State),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sparkyrng/v1/random.proto",
}

// Register adds srv to s.
func Register(s grpc.ServiceRegistrar, srv RandomServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// LoggingInterceptor logs every call at debug level and failures at warn.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		logger.Warn().Str("method", info.FullMethod).Err(err).Dur("dur", time.Since(start)).Msg("grpc call failed")
	} else {
		logger.Debug().Str("method", info.FullMethod).Dur("dur", time.Since(start)).Msg("grpc call")
	}
	return resp, err
}

// NewGRPCServer returns a grpc.Server with the service and logging installed.
func NewGRPCServer(gen *service.Generator, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor))
	s := grpc.NewServer(opts...)
	Register(s, NewServer(gen))
	return s
}
