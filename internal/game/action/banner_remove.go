package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// BannerRemove removes the banner element facing loc.Direction at exactly
// loc's height, refunding part of its price.
type BannerRemove struct {
	base
	loc park.CoordsXYZD
}

// NewBannerRemove returns an action removing the banner at loc.
func NewBannerRemove(loc park.CoordsXYZD) *BannerRemove {
	return &BannerRemove{loc: loc}
}

func (a *BannerRemove) Type() Type           { return TypeBannerRemove }
func (a *BannerRemove) Name() string         { return TypeBannerRemove.String() }
func (a *BannerRemove) Loc() park.CoordsXYZD { return a.loc }
func (a *BannerRemove) Serialise(s *Stream)  { a.serialise(s); a.AcceptParameters(s) }

func (a *BannerRemove) AcceptParameters(v ParameterVisitor) {
	v.Coords("loc", &a.loc)
}

// resolve finds the banner element and its record.
//
// Postcondition: Returns a failed Result and nil element on any stale or
// invalid reference.
func (a *BannerRemove) resolve(env *Env) (*park.TileElement, *park.Banner, *Result) {
	w := env.World
	tile := a.loc.XY().ToTile()
	var elem *park.TileElement
	for _, e := range w.Map.ElementsAt(tile) {
		if e.Type != park.ElementBanner || e.BaseZ != a.loc.Z {
			continue
		}
		if e.Ghost && !a.has(FlagGhost) {
			continue
		}
		if e.Position != a.loc.Direction {
			continue
		}
		elem = e
		break
	}
	if elem == nil {
		env.Logger.Error("invalid banner location", zap.Stringer("loc", a.loc))
		return nil, nil, Fail(StatusInvalidParameters, StrCantRemoveThis, StrNone)
	}
	if elem.BannerIndex == park.BannerIndexNull || int(elem.BannerIndex) >= park.MaxBanners {
		env.Logger.Error("invalid banner index", zap.Uint16("index", uint16(elem.BannerIndex)))
		return nil, nil, Fail(StatusInvalidParameters, StrCantRemoveThis, StrNone)
	}
	banner := w.Banners.Get(elem.BannerIndex)
	if banner == nil {
		env.Logger.Error("banner record missing", zap.Uint16("index", uint16(elem.BannerIndex)))
		return nil, nil, Fail(StatusInvalidParameters, StrCantRemoveThis, StrNone)
	}
	return elem, banner, nil
}

func (a *BannerRemove) result(env *Env, banner *park.Banner) *Result {
	res := OK().withPosition(tileCentre(a.loc))
	res.Expenditure = money.ExpenditureLandscaping
	res.ErrorTitle = StrCantRemoveThis
	if entry, ok := env.World.Catalog.Banner(banner.Type); ok {
		res.Cost = money.Refund(entry.Price)
	}
	return res
}

// Query validates ownership and the banner reference.
func (a *BannerRemove) Query(env *Env) *Result {
	w := env.World
	below := park.CoordsXYZ{X: a.loc.X, Y: a.loc.Y, Z: a.loc.Z - 16}
	if !w.Map.LocationValid(a.loc.XY()) || !w.CanBuildAt(below) {
		return Fail(StatusNotOwned, StrCantRemoveThis, StrLandNotOwnedByPark)
	}
	_, banner, fail := a.resolve(env)
	if fail != nil {
		return fail
	}
	return a.result(env, banner)
}

// Execute frees the banner record, then removes the element.
func (a *BannerRemove) Execute(env *Env) *Result {
	w := env.World
	elem, banner, fail := a.resolve(env)
	if fail != nil {
		return fail
	}
	res := a.result(env, banner)

	w.Banners.Free(elem.BannerIndex)
	elem.BannerIndex = park.BannerIndexNull
	env.Sink.Notify(notify.InvalidateTile(a.loc.X, a.loc.Y, a.loc.Z, a.loc.Z+32))
	env.Sink.Notify(notify.CloseWindowByNumber(notify.WindowBanner, uint32(banner.Index)))
	w.Map.Remove(a.loc.XY().ToTile(), elem)
	return res
}
