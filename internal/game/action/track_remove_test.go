package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

func TestTrackRemove_RemovesPiece(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 0, "wooden_coaster")
	tile := park.TileCoordsXY{X: 4, Y: 4}
	elem := placeTrack(h.world, ride, tile, 16, 1, park.TrackUp25, 0)

	res := h.exec.Execute(action.NewTrackRemove(park.TrackUp25, 0, tileLoc(tile, 16, 1)))

	require.True(t, res.Ok(), res.Message())
	assert.Equal(t, money.Refund(240), res.Cost)
	assert.False(t, h.world.Map.Contains(tile, elem))
	assert.Equal(t, testCash+180, h.world.Finances.Cash)
}

func TestTrackRemove_NoSpendKeepsCostButSkipsFinances(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 0, "wooden_coaster")
	tile := park.TileCoordsXY{X: 4, Y: 4}
	placeTrack(h.world, ride, tile, 16, 0, park.TrackFlat, 0)

	a := action.NewTrackRemove(park.TrackFlat, 0, tileLoc(tile, 16, 0))
	a.SetFlags(action.FlagNoSpend)
	res := h.exec.Execute(a)

	require.True(t, res.Ok())
	assert.Equal(t, money.Refund(120), res.Cost)
	assert.Equal(t, testCash, h.world.Finances.Cash)
}

func TestTrackRemove_Rejections(t *testing.T) {
	tile := park.TileCoordsXY{X: 4, Y: 4}
	cases := []struct {
		name   string
		setup  func(w *park.World, e *park.TileElement, r *park.Ride)
		loc    park.CoordsXYZD
		track  park.TrackType
		status action.Status
	}{
		{"wrong direction", nil, tileLoc(tile, 16, 2), park.TrackFlat, action.StatusInvalidParameters},
		{"wrong height", nil, tileLoc(tile, 24, 0), park.TrackFlat, action.StatusInvalidParameters},
		{"wrong shape", nil, tileLoc(tile, 16, 0), park.TrackUp25, action.StatusInvalidParameters},
		{"ghost without flag", func(_ *park.World, e *park.TileElement, _ *park.Ride) { e.Ghost = true }, tileLoc(tile, 16, 0), park.TrackFlat, action.StatusInvalidParameters},
		{"land not owned", func(w *park.World, _ *park.TileElement, _ *park.Ride) { w.Map.SetOwned(tile, false) }, tileLoc(tile, 16, 0), park.TrackFlat, action.StatusNotOwned},
		{"indestructible track", func(_ *park.World, _ *park.TileElement, r *park.Ride) { r.Lifecycle |= park.LifecycleIndestructibleTrack }, tileLoc(tile, 16, 0), park.TrackFlat, action.StatusNoClearance},
		{"ride gone", func(w *park.World, _ *park.TileElement, r *park.Ride) { w.Rides.Delete(r.ID) }, tileLoc(tile, 16, 0), park.TrackFlat, action.StatusInvalidParameters},
		{"off map", nil, park.CoordsXYZD{X: -32, Y: 0, Z: 16}, park.TrackFlat, action.StatusInvalidParameters},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			ride := addRide(t, h.world, 0, "wooden_coaster")
			elem := placeTrack(h.world, ride, tile, 16, 0, park.TrackFlat, 0)
			if tc.setup != nil {
				tc.setup(h.world, elem, ride)
			}
			res := h.exec.Execute(action.NewTrackRemove(tc.track, 0, tc.loc))
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, money.Undefined, res.Cost)
			assert.True(t, h.world.Map.Contains(tile, elem))
			assert.Equal(t, testCash, h.world.Finances.Cash)
		})
	}
}

func TestTrackRemove_SandboxIgnoresOwnership(t *testing.T) {
	h := newHarness(t)
	h.world.Sandbox = true
	ride := addRide(t, h.world, 0, "go_karts")
	tile := park.TileCoordsXY{X: 7, Y: 2}
	placeTrack(h.world, ride, tile, 16, 0, park.TrackFlat, 0)
	h.world.Map.SetOwned(tile, false)

	res := h.exec.Execute(action.NewTrackRemove(park.TrackFlat, 0, tileLoc(tile, 16, 0)))
	assert.True(t, res.Ok())
}
