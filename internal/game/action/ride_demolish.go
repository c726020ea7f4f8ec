package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// RideModify selects what RideDemolish does to the ride.
type RideModify uint8

const (
	ModifyDemolish RideModify = iota
	ModifyRenew
)

// DemolishCooldownTicks is the minimum tick gap between two demolish or
// refurbish requests from one player.
const DemolishCooldownTicks = 40

// mazeSubCellOffsets are the tile-relative offsets of the four maze
// sub-cells, indexed by direction.
var mazeSubCellOffsets = [park.NumDirections]park.CoordsXY{
	{X: 0, Y: 0},
	{X: 0, Y: 16},
	{X: 16, Y: 16},
	{X: 16, Y: 0},
}

// RideDemolish either demolishes a ride with everything that refers to it,
// or refurbishes it for a fee.
type RideDemolish struct {
	base
	ride   park.RideID
	modify RideModify
}

// NewRideDemolish returns an action applying modify to ride.
func NewRideDemolish(ride park.RideID, modify RideModify) *RideDemolish {
	return &RideDemolish{ride: ride, modify: modify}
}

func (a *RideDemolish) Type() Type           { return TypeRideDemolish }
func (a *RideDemolish) Name() string         { return TypeRideDemolish.String() }
func (a *RideDemolish) Ride() park.RideID    { return a.ride }
func (a *RideDemolish) Modify() RideModify   { return a.modify }
func (a *RideDemolish) CooldownTime() uint32 { return DemolishCooldownTicks }
func (a *RideDemolish) Serialise(s *Stream)  { a.serialise(s); a.AcceptParameters(s) }

func (a *RideDemolish) AcceptParameters(v ParameterVisitor) {
	visitUint16(v, "ride", &a.ride)
	visitUint8(v, "modifyType", &a.modify)
}

// validate checks every precondition of the requested modification.
func (a *RideDemolish) validate(env *Env) (*park.Ride, *Result) {
	if a.has(FlagGhost) {
		return nil, Fail(StatusInvalidParameters, StrCantDemolishRide, StrNone)
	}
	w := env.World
	ride := w.Rides.Get(a.ride)
	if ride == nil {
		env.Logger.Warn("invalid game command for ride", zap.Uint16("ride", uint16(a.ride)))
		return nil, Fail(StatusInvalidParameters, StrCantDemolishRide, StrNone)
	}
	switch a.modify {
	case ModifyDemolish:
		if ride.Lifecycle&(park.LifecycleIndestructible|park.LifecycleIndestructibleTrack) != 0 {
			return nil, Fail(StatusNoClearance, StrCantDemolishRide, StrLocalAuthorityForbidsDemolition)
		}
	case ModifyRenew:
		if ride.Status != park.RideStatusClosed && ride.Status != park.RideStatusSimulating {
			return nil, Fail(StatusDisallowed, StrCantRefurbishRide, StrMustBeClosedFirst)
		}
		if ride.NumRiders > 0 {
			return nil, Fail(StatusDisallowed, StrCantRefurbishRide, StrRideNotYetEmpty)
		}
		desc, ok := w.Catalog.RideType(ride.Type)
		if !ride.HasLifecycle(park.LifecycleEverBeenOpened) || !ok || desc.AvailableBreakdowns == 0 {
			return nil, Fail(StatusDisallowed, StrCantRefurbishRide, StrCantRefurbishNotNeeded)
		}
	default:
		env.Logger.Warn("unknown ride modify type", zap.Uint8("modify", uint8(a.modify)))
		return nil, Fail(StatusInvalidParameters, StrCantDoThis, StrNone)
	}
	return ride, nil
}

// refurbishPrice is half the ride's refund value, charged as a positive fee.
func refurbishPrice(w *park.World, r *park.Ride) money.Money {
	return -w.RideRefundPrice(r) / money.RefurbishDivisor
}

// Query validates the request. A demolish reports the refund the ride is
// expected to return; a refurbish reports its fee.
func (a *RideDemolish) Query(env *Env) *Result {
	ride, fail := a.validate(env)
	if fail != nil {
		return fail
	}
	res := OK()
	res.Expenditure = money.ExpenditureRideConstruction
	if a.modify == ModifyRenew {
		res.ErrorTitle = StrCantRefurbishRide
		res.Cost = refurbishPrice(env.World, ride)
		return res
	}
	res.ErrorTitle = StrCantDemolishRide
	res.Cost = env.World.RideRefundPrice(ride)
	return res
}

// Execute demolishes or refurbishes the ride.
func (a *RideDemolish) Execute(env *Env) *Result {
	ride, fail := a.validate(env)
	if fail != nil {
		return fail
	}
	if a.modify == ModifyRenew {
		return a.refurbish(env, ride)
	}
	return a.demolish(env, ride)
}

func (a *RideDemolish) focus(w *park.World, r *park.Ride, res *Result) {
	if r.OverallView == nil {
		return
	}
	c := r.OverallView.ToTileCentre()
	res.withPosition(park.CoordsXYZ{X: c.X, Y: c.Y, Z: w.TileHeight(c)})
}

func (a *RideDemolish) demolish(env *Env, ride *park.Ride) *Result {
	w := env.World
	id := ride.ID
	refund := a.demolishTracks(env)

	w.ClearForConstruction(ride)
	w.RemoveRidePeeps(ride)
	w.StopGuestsQueuing(ride)
	w.RemoveRideEntrances(ride)
	w.DisableNewsItems(park.NewsRide, uint32(id))
	w.UnlinkRideBanners(id)
	w.ForgetRide(id)
	w.CancelCampaignsForRide(id)

	res := OK()
	res.Expenditure = money.ExpenditureRideConstruction
	res.ErrorTitle = StrCantDemolishRide
	res.Cost = refund
	a.focus(w, ride, res)

	w.Rides.Delete(id)
	w.ParkValue = w.CalculateParkValue()

	if !(a.ActionFlags() | a.Flags()).Has(FlagAllowWhilePaused) {
		env.Sink.Notify(notify.CloseWindowByNumber(notify.WindowRideConstruction, uint32(id)))
	}
	env.Sink.Notify(notify.CloseWindowByNumber(notify.WindowRide, uint32(id)))
	env.Sink.Notify(notify.CloseWindowByNumber(notify.WindowDemolishRidePrompt, uint32(id)))
	env.Sink.Notify(notify.CloseWindowByClass(notify.WindowNewCampaign))
	env.Sink.Notify(notify.Broadcast(notify.MessageRefreshCampaignRideList))
	env.Sink.Notify(notify.Broadcast(notify.MessageRefreshRideList))
	env.Sink.Notify(notify.Broadcast(notify.MessageRefreshGuestList))
	env.Sink.Notify(notify.InvalidateScrollingText())
	env.Sink.Notify(notify.InvalidateScreen())

	env.Logger.Info("ride demolished",
		zap.Uint16("ride", uint16(id)),
		zap.String("name", ride.Name),
		zap.Int64("refund", int64(refund)),
	)
	return res
}

// firstTrackOf returns the first track element of ride on tile t, or nil.
func firstTrackOf(w *park.World, t park.TileCoordsXY, ride park.RideID) *park.TileElement {
	for _, e := range w.Map.ElementsAt(t) {
		if e.Type == park.ElementTrack && e.RideIndex == ride {
			return e
		}
	}
	return nil
}

// demolishTracks removes every track element of the ride, tile by tile,
// through nested removal actions, and returns the summed refund of the
// removals that succeeded. Pieces the nested actions cannot remove are
// deleted directly.
//
// Postcondition: No track element of the ride remains on the map.
func (a *RideDemolish) demolishTracks(env *Env) money.Money {
	w := env.World
	var refund money.Money
	w.Map.ForEachTile(func(t park.TileCoordsXY) bool {
		for {
			elem := firstTrackOf(w, t, a.ride)
			if elem == nil {
				return true
			}
			start := t.ToCoords()
			loc := park.CoordsXYZD{X: start.X, Y: start.Y, Z: elem.BaseZ, Direction: elem.Direction}

			if !elem.IsMaze() {
				remove := NewTrackRemove(elem.TrackType, elem.Sequence, loc)
				remove.SetFlags(FlagNoSpend)
				res := env.Executor.ExecuteNested(remove)
				if res.Ok() {
					refund += res.Cost
				} else {
					w.Map.Remove(t, elem)
				}
				continue
			}

			for _, dir := range park.AllDirections {
				fill := NewMazeSetTrack(park.CoordsXYZD{
					X:         loc.X + mazeSubCellOffsets[dir].X,
					Y:         loc.Y + mazeSubCellOffsets[dir].Y,
					Z:         loc.Z,
					Direction: dir,
				}, false, a.ride, MazeFill)
				fill.SetFlags(a.Flags())
				res := env.Executor.ExecuteNested(fill)
				if !res.Ok() {
					break
				}
				refund += res.Cost
			}
			if w.Map.Contains(t, elem) {
				w.Map.Remove(t, elem)
			}
		}
	})
	return refund
}

func (a *RideDemolish) refurbish(env *Env, ride *park.Ride) *Result {
	w := env.World
	res := OK()
	res.Expenditure = money.ExpenditureRideConstruction
	res.ErrorTitle = StrCantRefurbishRide
	res.Cost = refurbishPrice(w, ride)

	ride.Renew(w.Tick)
	ride.Lifecycle &^= park.LifecycleEverBeenOpened
	ride.LastCrashType = park.CrashNone
	ride.WindowInvalidate |= park.InvalidateRideMaintenance | park.InvalidateRideCustomer
	a.focus(w, ride, res)

	env.Sink.Notify(notify.CloseWindowByNumber(notify.WindowDemolishRidePrompt, uint32(ride.ID)))
	return res
}
