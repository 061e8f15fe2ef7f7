package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/sparkyrng/xoshiro"
)

// Client calls sparkyrng.v1.Random.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) Next(ctx context.Context) (uint64, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.invoke(ctx, "Next", &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) Bits(ctx context.Context, b int32) (uint64, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.invoke(ctx, "Bits", wrapperspb.Int32(b), out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) Uint32(ctx context.Context) (uint32, error) {
	out := new(wrapperspb.UInt32Value)
	if err := c.invoke(ctx, "Uint32", &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) Uint64N(ctx context.Context, n uint64) (uint64, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.invoke(ctx, "Uint64N", wrapperspb.UInt64(n), out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) F52(ctx context.Context) (float64, error) {
	out := new(wrapperspb.DoubleValue)
	if err := c.invoke(ctx, "F52", &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) F53(ctx context.Context) (float64, error) {
	out := new(wrapperspb.DoubleValue)
	if err := c.invoke(ctx, "F53", &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) Discard(ctx context.Context, n uint64) error {
	return c.invoke(ctx, "Discard", wrapperspb.UInt64(n), new(emptypb.Empty))
}

// Seed reseeds the remote generator and returns its new state.
func (c *Client) Seed(ctx context.Context, seed uint64) (xoshiro.State, error) {
	out := new(wrapperspb.StringValue)
	if err := c.invoke(ctx, "Seed", wrapperspb.UInt64(seed), out); err != nil {
		return xoshiro.State{}, err
	}
	return xoshiro.ParseState(out.GetValue())
}

func (c *Client) State(ctx context.Context) (xoshiro.State, error) {
	out := new(wrapperspb.StringValue)
	if err := c.invoke(ctx, "State", &emptypb.Empty{}, out); err != nil {
		return xoshiro.State{}, err
	}
	return xoshiro.ParseState(out.GetValue())
}
