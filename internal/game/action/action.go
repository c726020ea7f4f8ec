package action

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// Type is the stable wire identifier of an action kind. The zero value is
// invalid.
type Type uint16

const (
	TypeBannerRemove Type = iota + 1
	TypeRideDemolish
	TypeTrackRemove
	TypeMazeSetTrack
	TypeStaffSetColour
	TypePauseToggle
)

// String returns the action kind name for t.
func (t Type) String() string {
	switch t {
	case TypeBannerRemove:
		return "banner_remove"
	case TypeRideDemolish:
		return "ride_demolish"
	case TypeTrackRemove:
		return "track_remove"
	case TypeMazeSetTrack:
		return "maze_set_track"
	case TypeStaffSetColour:
		return "staff_set_colour"
	case TypePauseToggle:
		return "pause_toggle"
	default:
		return fmt.Sprintf("action_type(%d)", uint16(t))
	}
}

// PlayerID identifies the player an action was submitted by.
type PlayerID uint32

// PlayerHost is the authoritative host's own player.
const PlayerHost PlayerID = 0

// Action is one validated world mutation request.
//
// Parameters are fixed at construction and exposed only through
// AcceptParameters; flags and player may change until the action is run.
// Query must not mutate the world. Execute re-resolves every world
// reference instead of trusting an earlier Query.
type Action interface {
	Type() Type
	Name() string
	AcceptParameters(v ParameterVisitor)
	// ActionFlags returns the static capability flags of the action kind.
	ActionFlags() Flags
	Flags() Flags
	SetFlags(f Flags)
	PlayerID() PlayerID
	SetPlayerID(id PlayerID)
	// Serialise visits the instance header followed by the parameters.
	Serialise(s *Stream)
	Query(env *Env) *Result
	Execute(env *Env) *Result
	// CooldownTime is the minimum number of ticks between two executions of
	// this kind by the same player; 0 disables the limit.
	CooldownTime() uint32
}

// Env is what an action sees while it runs.
type Env struct {
	World    *park.World
	Executor *Executor
	Sink     notify.Sink
	Logger   *zap.Logger
}

// base carries the mutable instance state shared by every action.
type base struct {
	flags  Flags
	player PlayerID
}

func (b *base) ActionFlags() Flags      { return 0 }
func (b *base) Flags() Flags            { return b.flags }
func (b *base) SetFlags(f Flags)        { b.flags = f }
func (b *base) PlayerID() PlayerID      { return b.player }
func (b *base) SetPlayerID(id PlayerID) { b.player = id }
func (b *base) CooldownTime() uint32    { return 0 }
func (b *base) has(f Flags) bool        { return b.flags.Has(f) }

func (b *base) serialise(s *Stream) {
	visitUint32(s, "flags", &b.flags)
	visitUint32(s, "player", &b.player)
}

// tileCentre returns the centre of the tile containing loc at loc's height.
func tileCentre(loc park.CoordsXYZD) park.CoordsXYZ {
	c := loc.XY().ToTileCentre()
	return park.CoordsXYZ{X: c.X, Y: c.Y, Z: loc.Z}
}
