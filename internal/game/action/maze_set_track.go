package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// MazeMode selects what MazeSetTrack does to the addressed segment.
type MazeMode uint8

const (
	// MazeBuild sets the segment, creating the maze element on initial
	// placement.
	MazeBuild MazeMode = iota
	// MazeMove only checks that the segment's maze element exists.
	MazeMove
	// MazeFill clears the segment and removes the element once no segment
	// remains.
	MazeFill
)

// mazeSubCell maps the quadrant of loc inside its tile to the segment bit
// index: {0,0}→0, {0,16}→1, {16,16}→2, {16,0}→3.
func mazeSubCell(loc park.CoordsXYZD) uint8 {
	east := loc.X%park.CoordsXYStep >= park.CoordsXYHalfTile
	south := loc.Y%park.CoordsXYStep >= park.CoordsXYHalfTile
	switch {
	case !east && !south:
		return 0
	case !east && south:
		return 1
	case east && south:
		return 2
	default:
		return 3
	}
}

// MazeSetTrack edits one sub-cell segment of a maze ride's track element.
type MazeSetTrack struct {
	base
	loc              park.CoordsXYZD
	initialPlacement bool
	ride             park.RideID
	mode             MazeMode
}

// NewMazeSetTrack returns an action editing the segment at loc of ride.
func NewMazeSetTrack(loc park.CoordsXYZD, initialPlacement bool, ride park.RideID, mode MazeMode) *MazeSetTrack {
	return &MazeSetTrack{loc: loc, initialPlacement: initialPlacement, ride: ride, mode: mode}
}

func (a *MazeSetTrack) Type() Type           { return TypeMazeSetTrack }
func (a *MazeSetTrack) Name() string         { return TypeMazeSetTrack.String() }
func (a *MazeSetTrack) Loc() park.CoordsXYZD { return a.loc }
func (a *MazeSetTrack) Ride() park.RideID    { return a.ride }
func (a *MazeSetTrack) Mode() MazeMode       { return a.mode }
func (a *MazeSetTrack) Serialise(s *Stream)  { a.serialise(s); a.AcceptParameters(s) }

func (a *MazeSetTrack) AcceptParameters(v ParameterVisitor) {
	v.Coords("location", &a.loc)
	v.Bool("isInitialPlacement", &a.initialPlacement)
	visitUint16(v, "ride", &a.ride)
	visitUint8(v, "mode", &a.mode)
}

func (a *MazeSetTrack) title() StringID {
	if a.mode == MazeFill {
		return StrCantRemoveThis
	}
	return StrCantBuildMaze
}

// resolve validates the location and ride and returns the maze element at
// loc, which may be nil only for an initial MazeBuild.
func (a *MazeSetTrack) resolve(env *Env) (*park.TileElement, *park.Ride, *Result) {
	w := env.World
	if !w.Map.LocationValid(a.loc.XY()) || a.loc.Z%park.CoordsZStep != 0 {
		return nil, nil, Fail(StatusInvalidParameters, a.title(), StrTooLowOrTooHigh)
	}
	if !w.CanBuildAt(a.loc.XYZ()) {
		return nil, nil, Fail(StatusNotOwned, a.title(), StrLandNotOwnedByPark)
	}
	ride := w.Rides.Get(a.ride)
	if ride == nil {
		env.Logger.Warn("maze edit for missing ride", zap.Uint16("ride", uint16(a.ride)))
		return nil, nil, Fail(StatusInvalidParameters, a.title(), StrNone)
	}
	if desc, ok := w.Catalog.RideType(ride.Type); !ok || !desc.IsMaze {
		env.Logger.Warn("maze edit for non-maze ride", zap.Uint16("ride", uint16(a.ride)), zap.String("type", ride.Type))
		return nil, nil, Fail(StatusInvalidParameters, a.title(), StrNone)
	}

	ghost := a.has(FlagGhost)
	var elem *park.TileElement
	for _, e := range w.Map.ElementsAt(a.loc.XY().ToTile()) {
		if e.IsMaze() && e.RideIndex == a.ride && e.BaseZ == a.loc.Z && e.Ghost == ghost {
			elem = e
			break
		}
	}
	bit := uint8(1) << mazeSubCell(a.loc)

	switch a.mode {
	case MazeBuild:
		if elem == nil && !a.initialPlacement {
			return nil, nil, Fail(StatusInvalidParameters, a.title(), StrNone)
		}
		if elem != nil && elem.MazeMask&bit != 0 {
			return nil, nil, Fail(StatusDisallowed, a.title(), StrNone)
		}
	case MazeMove:
		if elem == nil {
			return nil, nil, Fail(StatusInvalidParameters, a.title(), StrNone)
		}
	case MazeFill:
		if elem == nil {
			return nil, nil, Fail(StatusInvalidParameters, a.title(), StrNone)
		}
		if elem.MazeMask&bit == 0 {
			return nil, nil, Fail(StatusDisallowed, a.title(), StrSegmentAlreadyClear)
		}
	default:
		env.Logger.Warn("unknown maze mode", zap.Uint8("mode", uint8(a.mode)))
		return nil, nil, Fail(StatusInvalidParameters, a.title(), StrNone)
	}
	return elem, ride, nil
}

func (a *MazeSetTrack) result(env *Env, ride *park.Ride) *Result {
	res := OK().withPosition(park.CoordsXYZ{
		X: a.loc.X + park.CoordsXYHalfTile/2,
		Y: a.loc.Y + park.CoordsXYHalfTile/2,
		Z: a.loc.Z,
	})
	res.Expenditure = money.ExpenditureRideConstruction
	res.ErrorTitle = a.title()
	switch a.mode {
	case MazeBuild:
		if desc, ok := env.World.Catalog.RideType(ride.Type); ok {
			res.Cost = desc.MazeSegmentPrice
		}
	case MazeFill:
		res.Cost = env.World.MazeSegmentRefund(ride.Type)
	}
	return res
}

// Query validates the segment edit and prices it.
func (a *MazeSetTrack) Query(env *Env) *Result {
	_, ride, fail := a.resolve(env)
	if fail != nil {
		return fail
	}
	return a.result(env, ride)
}

// Execute applies the segment edit.
func (a *MazeSetTrack) Execute(env *Env) *Result {
	w := env.World
	elem, ride, fail := a.resolve(env)
	if fail != nil {
		return fail
	}
	res := a.result(env, ride)
	tile := a.loc.XY().ToTile()
	bit := uint8(1) << mazeSubCell(a.loc)

	switch a.mode {
	case MazeBuild:
		if elem == nil {
			elem = &park.TileElement{
				Type:      park.ElementTrack,
				BaseZ:     a.loc.Z,
				Direction: a.loc.Direction,
				Ghost:     a.has(FlagGhost),
				RideIndex: a.ride,
				TrackType: park.TrackMaze,
			}
			w.Map.Insert(tile, elem)
			if ride.OverallView == nil {
				view := tile.ToCoords()
				ride.OverallView = &view
			}
		}
		elem.MazeMask |= bit
	case MazeFill:
		elem.MazeMask &^= bit
		if elem.MazeMask == 0 {
			w.Map.Remove(tile, elem)
		}
	}
	if a.mode != MazeMove {
		start := tile.ToCoords()
		env.Sink.Notify(notify.InvalidateTile(start.X, start.Y, a.loc.Z, a.loc.Z+32))
	}
	return res
}
