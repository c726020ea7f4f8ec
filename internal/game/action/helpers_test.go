package action_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

const testCash money.Money = 100000

// newTestWorld returns a 16x16 park with every tile owned and grassed.
func newTestWorld(t testing.TB) *park.World {
	t.Helper()
	w := park.NewWorld(16, park.DefaultCatalog())
	w.Finances.Cash = testCash
	w.Map.ForEachTile(func(tile park.TileCoordsXY) bool {
		w.Map.SetOwned(tile, true)
		w.Map.Insert(tile, &park.TileElement{Type: park.ElementSurface})
		return true
	})
	return w
}

type harness struct {
	world    *park.World
	exec     *action.Executor
	intents  *notify.Recorder
	executed []executed
}

type executed struct {
	action action.Action
	result *action.Result
	nested bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{world: newTestWorld(t), intents: &notify.Recorder{}}
	h.exec = action.NewExecutor(h.world, h.intents, zaptest.NewLogger(t))
	h.exec.AddObserver(action.ObserverFunc(func(a action.Action, res *action.Result, nested bool) {
		h.executed = append(h.executed, executed{action: a, result: res, nested: nested})
	}))
	return h
}

func (h *harness) nested() []executed {
	var out []executed
	for _, e := range h.executed {
		if e.nested {
			out = append(out, e)
		}
	}
	return out
}

func addRide(t testing.TB, w *park.World, id park.RideID, rideType string) *park.Ride {
	t.Helper()
	r := &park.Ride{
		ID:          id,
		Type:        rideType,
		Name:        rideType,
		Reliability: park.RideInitialReliability,
	}
	require.NoError(t, w.Rides.Add(r))
	return r
}

func placeTrack(w *park.World, r *park.Ride, tile park.TileCoordsXY, z int32, dir park.Direction, tt park.TrackType, seq uint8) *park.TileElement {
	e := &park.TileElement{
		Type:      park.ElementTrack,
		BaseZ:     z,
		Direction: dir,
		RideIndex: r.ID,
		TrackType: tt,
		Sequence:  seq,
	}
	w.Map.Insert(tile, e)
	if r.OverallView == nil {
		c := tile.ToCoords()
		r.OverallView = &c
	}
	return e
}

func placeMaze(w *park.World, r *park.Ride, tile park.TileCoordsXY, z int32, mask uint8) *park.TileElement {
	e := placeTrack(w, r, tile, z, 0, park.TrackMaze, 0)
	e.MazeMask = mask
	return e
}

func placeBanner(t testing.TB, w *park.World, tile park.TileCoordsXY, z int32, pos park.Direction, bannerType string) (*park.TileElement, *park.Banner) {
	t.Helper()
	b := &park.Banner{Type: bannerType, RideIndex: park.RideIDNull}
	idx, err := w.Banners.Create(b)
	require.NoError(t, err)
	e := &park.TileElement{Type: park.ElementBanner, BaseZ: z, BannerIndex: idx, Position: pos}
	w.Map.Insert(tile, e)
	return e, b
}

func tileLoc(tile park.TileCoordsXY, z int32, dir park.Direction) park.CoordsXYZD {
	c := tile.ToCoords()
	return park.CoordsXYZD{X: c.X, Y: c.Y, Z: z, Direction: dir}
}

func countTrack(w *park.World, id park.RideID) int {
	n := 0
	w.Map.ForEachElement(func(_ park.TileCoordsXY, e *park.TileElement) bool {
		if e.Type == park.ElementTrack && e.RideIndex == id {
			n++
		}
		return true
	})
	return n
}

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}
