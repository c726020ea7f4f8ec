package replication

import (
	"context"
	"strconv"

	"google.golang.org/grpc/metadata"

	"github.com/cory-johannsen/parksim/internal/game/action"
)

// PlayerIDHeader carries the submitting player's id.
const PlayerIDHeader = "x-parksim-player-id"

// SignatureHeader carries the hex action layout signature the client
// encoded with.
const SignatureHeader = "x-parksim-action-signature"

// withSubmitMetadata attaches the player id and the signature of a to ctx.
func withSubmitMetadata(ctx context.Context, player action.PlayerID, a action.Action) context.Context {
	return metadata.AppendToOutgoingContext(ctx,
		PlayerIDHeader, strconv.FormatUint(uint64(player), 10),
		SignatureHeader, action.SignatureOf(a).String(),
	)
}

func firstIncoming(ctx context.Context, header string) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get(header)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// playerFromIncoming parses the player id header.
func playerFromIncoming(ctx context.Context) (action.PlayerID, bool) {
	raw, ok := firstIncoming(ctx, PlayerIDHeader)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return action.PlayerID(id), true
}
