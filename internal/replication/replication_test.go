package replication_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/park"
	"github.com/cory-johannsen/parksim/internal/replication"
	"github.com/cory-johannsen/parksim/internal/sim"
)

type fixture struct {
	world *park.World
	loop  *sim.Loop
	conn  *grpc.ClientConn
	seen  []action.Action
}

// newFixture serves the action service over an in-memory listener backed by
// a running simulation loop.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	w := park.NewWorld(8, park.DefaultCatalog())
	w.Finances.Cash = 1000
	exec := action.NewExecutor(w, nil, logger)
	f := &fixture{world: w, loop: sim.NewLoop(exec, 2*time.Millisecond, logger)}
	exec.AddObserver(action.ObserverFunc(func(a action.Action, _ *action.Result, nested bool) {
		if !nested {
			f.seen = append(f.seen, a)
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	f.loop.Start(ctx)
	t.Cleanup(func() {
		cancel()
		f.loop.Wait()
	})

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	replication.RegisterActionServiceServer(srv, replication.NewServer(action.DefaultRegistry(), f.loop, time.Second, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	f.conn = conn
	return f
}

func ctxTimeout(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSubmit_ExecutesOnLoop(t *testing.T) {
	f := newFixture(t)
	client := replication.NewClient(f.conn, 7)

	res, err := client.Submit(ctxTimeout(t), action.NewStaffSetColour(park.StaffMechanic, 17))
	require.NoError(t, err)
	assert.True(t, res.Ok())

	require.Len(t, f.seen, 1)
	assert.Equal(t, action.PlayerID(7), f.seen[0].PlayerID())
	assert.True(t, f.seen[0].Flags().Has(action.FlagNetworkOrigin))
	c, _ := f.world.StaffSettings.UniformColour(park.StaffMechanic)
	assert.Equal(t, park.Colour(17), c)
}

func TestSubmit_RejectionIsAResult(t *testing.T) {
	f := newFixture(t)
	client := replication.NewClient(f.conn, 1)

	res, err := client.Submit(ctxTimeout(t), action.NewRideDemolish(42, action.ModifyDemolish))
	require.NoError(t, err)
	assert.Equal(t, action.StatusInvalidParameters, res.Status)
	assert.False(t, res.Cost.IsDefined())
	assert.Equal(t, action.StrCantDemolishRide, res.ErrorTitle)
}

func TestSubmit_MasksClientFlags(t *testing.T) {
	f := newFixture(t)
	client := replication.NewClient(f.conn, 2)
	a := action.NewStaffSetColour(park.StaffHandyman, 1)
	a.SetFlags(action.FlagGhost | action.FlagNoSpend | action.FlagAllowWhilePaused | action.FlagClientOnly)

	_, err := client.Submit(ctxTimeout(t), a)
	require.NoError(t, err)
	require.Len(t, f.seen, 1)
	assert.Equal(t, action.FlagGhost|action.FlagNetworkOrigin, f.seen[0].Flags())
}

func invokeRaw(ctx context.Context, t *testing.T, conn *grpc.ClientConn, payload []byte) error {
	t.Helper()
	out := new(wrapperspb.BytesValue)
	return conn.Invoke(ctx, replication.SubmitMethod, wrapperspb.Bytes(payload), out)
}

func TestSubmit_RequiresPlayer(t *testing.T) {
	f := newFixture(t)
	err := invokeRaw(ctxTimeout(t), t, f.conn, action.Encode(action.NewPauseToggle()))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Empty(t, f.seen)
}

func TestSubmit_RejectsGarbage(t *testing.T) {
	f := newFixture(t)
	ctx := metadata.AppendToOutgoingContext(ctxTimeout(t), replication.PlayerIDHeader, "3")
	err := invokeRaw(ctx, t, f.conn, []byte{0xff, 0xff, 0xff})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSubmit_RejectsSignatureMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := metadata.AppendToOutgoingContext(ctxTimeout(t),
		replication.PlayerIDHeader, "3",
		replication.SignatureHeader, action.SignatureOf(action.NewBannerRemove(park.CoordsXYZD{})).String(),
	)
	err := invokeRaw(ctx, t, f.conn, action.Encode(action.NewPauseToggle()))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Empty(t, f.seen)
}

// stalled queues actions that no loop ever runs.
type stalled struct{ q sim.Queue }

func (s *stalled) Submit(a action.Action) (*sim.Submission, error) { return s.q.Push(a) }

func serve(t *testing.T, sub replication.Submitter) *grpc.ClientConn {
	t.Helper()
	logger := zaptest.NewLogger(t)
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	replication.RegisterActionServiceServer(srv, replication.NewServer(action.DefaultRegistry(), sub, 20*time.Millisecond, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSubmit_TimesOutWaitingForTick(t *testing.T) {
	conn := serve(t, &stalled{})
	_, err := replication.NewClient(conn, 1).Submit(ctxTimeout(t), action.NewPauseToggle())
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

func TestSubmit_StoppedLoop(t *testing.T) {
	s := &stalled{}
	s.q.Close()
	conn := serve(t, s)
	_, err := replication.NewClient(conn, 1).Submit(ctxTimeout(t), action.NewPauseToggle())
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestProperty_ResultCodec(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		res := &action.Result{
			Status:       action.Status(rapid.IntRange(0, 6).Draw(rt, "status")),
			Cost:         money.Money(rapid.Int64().Draw(rt, "cost")),
			Expenditure:  money.ExpenditureType(rapid.IntRange(0, int(money.ExpenditureCount)-1).Draw(rt, "exp")),
			ErrorTitle:   action.StringID(rapid.Uint16().Draw(rt, "title")),
			ErrorMessage: action.StringID(rapid.Uint16().Draw(rt, "message")),
		}
		if rapid.Bool().Draw(rt, "hasPosition") {
			res.Position = &park.CoordsXYZ{
				X: rapid.Int32().Draw(rt, "x"),
				Y: rapid.Int32().Draw(rt, "y"),
				Z: rapid.Int32().Draw(rt, "z"),
			}
		}
		got, err := replication.DecodeResult(replication.EncodeResult(res))
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if (got.Position == nil) != (res.Position == nil) {
			rt.Fatalf("position presence: got %v, want %v", got.Position, res.Position)
		}
		if got.Position != nil && *got.Position != *res.Position {
			rt.Fatalf("position: got %+v, want %+v", *got.Position, *res.Position)
		}
		gotFields, wantFields := *got, *res
		gotFields.Position, wantFields.Position = nil, nil
		if gotFields != wantFields {
			rt.Fatalf("got %+v, want %+v", gotFields, wantFields)
		}
	})
}

func TestDecodeResult_Truncated(t *testing.T) {
	b := replication.EncodeResult(action.OK())
	_, err := replication.DecodeResult(b[:len(b)-1])
	assert.Error(t, err)
}
