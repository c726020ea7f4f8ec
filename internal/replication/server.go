package replication

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/sim"
)

// clientFlags are the action flags a network client may set.
const clientFlags = action.FlagGhost

// Submitter queues an action for the simulation loop. *sim.Loop satisfies it.
type Submitter interface {
	Submit(a action.Action) (*sim.Submission, error)
}

// Server implements ActionServiceServer on top of a simulation loop.
type Server struct {
	registry *action.Registry
	loop     Submitter
	timeout  time.Duration
	logger   *zap.Logger
}

// NewServer creates a Server.
//
// Precondition: registry, loop and logger must not be nil; timeout > 0.
func NewServer(registry *action.Registry, loop Submitter, timeout time.Duration, logger *zap.Logger) *Server {
	return &Server{registry: registry, loop: loop, timeout: timeout, logger: logger}
}

// Submit decodes the action, stamps it with the caller's player id and
// NetworkOrigin, queues it and waits for the tick that executes it.
//
// Postcondition: Rejected actions are reported in the Result, not as gRPC
// errors. gRPC errors mean the action never reached the executor.
func (s *Server) Submit(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	player, ok := playerFromIncoming(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing or malformed "+PlayerIDHeader)
	}

	a, err := action.Decode(s.registry, req.GetValue())
	if err != nil {
		s.logger.Warn("rejecting undecodable action",
			zap.Uint32("player", uint32(player)),
			zap.Int("bytes", len(req.GetValue())),
			zap.Error(err),
		)
		return nil, status.Errorf(codes.InvalidArgument, "decoding action: %v", err)
	}
	if sig, ok := firstIncoming(ctx, SignatureHeader); ok {
		if want := action.SignatureOf(a).String(); sig != want {
			s.logger.Warn("action signature mismatch",
				zap.String("action", a.Name()),
				zap.String("got", sig),
				zap.String("want", want),
			)
			return nil, status.Errorf(codes.FailedPrecondition, "%s parameter layout mismatch", a.Name())
		}
	}

	a.SetFlags(a.Flags()&clientFlags | action.FlagNetworkOrigin)
	a.SetPlayerID(player)

	sub, err := s.loop.Submit(a)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "queueing action: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := sub.Wait(ctx)
	switch {
	case errors.Is(err, sim.ErrQueueClosed):
		return nil, status.Error(codes.Unavailable, "simulation stopped")
	case errors.Is(err, context.DeadlineExceeded):
		return nil, status.Error(codes.DeadlineExceeded, "waiting for tick")
	case err != nil:
		return nil, status.FromContextError(err).Err()
	}
	return wrapperspb.Bytes(EncodeResult(res)), nil
}
