package replication

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/cory-johannsen/parksim/internal/game/action"
)

// Client submits actions to a park server on behalf of one player.
type Client struct {
	conn   grpc.ClientConnInterface
	player action.PlayerID
}

// NewClient creates a Client for player over conn.
func NewClient(conn grpc.ClientConnInterface, player action.PlayerID) *Client {
	return &Client{conn: conn, player: player}
}

// Submit encodes a, sends it and returns the server's Result.
//
// Postcondition: A non-nil error means the server never executed a.
func (c *Client) Submit(ctx context.Context, a action.Action, opts ...grpc.CallOption) (*action.Result, error) {
	ctx = withSubmitMetadata(ctx, c.player, a)
	out := new(wrapperspb.BytesValue)
	if err := c.conn.Invoke(ctx, SubmitMethod, wrapperspb.Bytes(action.Encode(a)), out, opts...); err != nil {
		return nil, fmt.Errorf("submitting %s: %w", a.Name(), err)
	}
	res, err := DecodeResult(out.GetValue())
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", a.Name(), err)
	}
	return res, nil
}
