package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// TrackRemove removes one non-maze track piece identified by its shape,
// sequence index and exact location.
type TrackRemove struct {
	base
	trackType park.TrackType
	sequence  uint8
	loc       park.CoordsXYZD
}

// NewTrackRemove returns an action removing the piece of trackType and
// sequence placed at loc.
func NewTrackRemove(trackType park.TrackType, sequence uint8, loc park.CoordsXYZD) *TrackRemove {
	return &TrackRemove{trackType: trackType, sequence: sequence, loc: loc}
}

func (a *TrackRemove) Type() Type                { return TypeTrackRemove }
func (a *TrackRemove) Name() string              { return TypeTrackRemove.String() }
func (a *TrackRemove) TrackType() park.TrackType { return a.trackType }
func (a *TrackRemove) Sequence() uint8           { return a.sequence }
func (a *TrackRemove) Loc() park.CoordsXYZD      { return a.loc }
func (a *TrackRemove) Serialise(s *Stream)       { a.serialise(s); a.AcceptParameters(s) }

func (a *TrackRemove) AcceptParameters(v ParameterVisitor) {
	visitUint16(v, "trackType", &a.trackType)
	v.Uint8("sequence", &a.sequence)
	v.Coords("origin", &a.loc)
}

func (a *TrackRemove) resolve(env *Env) (*park.TileElement, *park.Ride, *Result) {
	w := env.World
	if !w.Map.LocationValid(a.loc.XY()) {
		return nil, nil, Fail(StatusInvalidParameters, StrCantRemoveTrack, StrNone)
	}
	ghost := a.has(FlagGhost)
	var elem *park.TileElement
	for _, e := range w.Map.ElementsAt(a.loc.XY().ToTile()) {
		if e.Type != park.ElementTrack || e.IsMaze() {
			continue
		}
		if e.BaseZ != a.loc.Z || e.Direction != a.loc.Direction {
			continue
		}
		if e.TrackType != a.trackType || e.Sequence != a.sequence {
			continue
		}
		if e.Ghost != ghost {
			continue
		}
		elem = e
		break
	}
	if elem == nil {
		env.Logger.Warn("track element not found",
			zap.Stringer("loc", a.loc),
			zap.Uint16("track_type", uint16(a.trackType)),
			zap.Uint8("sequence", a.sequence),
		)
		return nil, nil, Fail(StatusInvalidParameters, StrCantRemoveTrack, StrNone)
	}
	ride := w.Rides.Get(elem.RideIndex)
	if ride == nil {
		env.Logger.Warn("track element references missing ride", zap.Uint16("ride", uint16(elem.RideIndex)))
		return nil, nil, Fail(StatusInvalidParameters, StrCantRemoveTrack, StrNone)
	}
	if ride.HasLifecycle(park.LifecycleIndestructibleTrack) {
		return nil, nil, Fail(StatusNoClearance, StrCantRemoveTrack, StrLocalAuthorityForbidsDemolition)
	}
	if !w.CanBuildAt(a.loc.XYZ()) {
		return nil, nil, Fail(StatusNotOwned, StrCantRemoveTrack, StrLandNotOwnedByPark)
	}
	return elem, ride, nil
}

func (a *TrackRemove) result(env *Env, ride *park.Ride) *Result {
	res := OK().withPosition(tileCentre(a.loc))
	res.Expenditure = money.ExpenditureRideConstruction
	res.ErrorTitle = StrCantRemoveTrack
	res.Cost = env.World.TrackPieceRefund(ride.Type, a.trackType)
	return res
}

// Query locates the piece and prices its refund.
func (a *TrackRemove) Query(env *Env) *Result {
	_, ride, fail := a.resolve(env)
	if fail != nil {
		return fail
	}
	return a.result(env, ride)
}

// Execute removes the piece.
func (a *TrackRemove) Execute(env *Env) *Result {
	elem, ride, fail := a.resolve(env)
	if fail != nil {
		return fail
	}
	res := a.result(env, ride)
	env.World.ClearForConstruction(ride)
	env.World.Map.Remove(a.loc.XY().ToTile(), elem)
	env.Sink.Notify(notify.InvalidateTile(a.loc.X, a.loc.Y, a.loc.Z, a.loc.Z+32))
	return res
}
