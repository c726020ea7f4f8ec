package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

func TestRideDemolish_RemovesEveryTrackPiece(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 1, "wooden_coaster")
	other := addRide(t, h.world, 2, "junior_coaster")
	pieces := []park.TrackType{park.TrackBeginStation, park.TrackFlat, park.TrackLeftQuarterTurn, park.TrackFlat}
	for i, tt := range pieces {
		placeTrack(h.world, ride, park.TileCoordsXY{X: int32(2 + i), Y: 3}, 16, 0, tt, 0)
	}
	// Two pieces stacked on one tile.
	placeTrack(h.world, ride, park.TileCoordsXY{X: 2, Y: 3}, 48, 1, park.TrackUp25, 0)
	keep := placeTrack(h.world, other, park.TileCoordsXY{X: 3, Y: 3}, 64, 0, park.TrackFlat, 0)
	require.Equal(t, 5, countTrack(h.world, 1))

	res := h.exec.Execute(action.NewRideDemolish(1, action.ModifyDemolish))

	require.True(t, res.Ok(), res.Message())
	assert.Equal(t, 0, countTrack(h.world, 1))
	assert.True(t, h.world.Map.Contains(park.TileCoordsXY{X: 3, Y: 3}, keep))
	assert.Nil(t, h.world.Rides.Get(1))

	var want money.Money
	for _, tt := range append(pieces, park.TrackUp25) {
		want += money.Refund(120 * money.Money(tt.PriceFactor()))
	}
	assert.Equal(t, want, res.Cost)
	assert.Equal(t, testCash-want, h.world.Finances.Cash)
	assert.Equal(t, money.ExpenditureRideConstruction, res.Expenditure)

	nested := h.nested()
	assert.Len(t, nested, 5)
	for _, n := range nested {
		assert.Equal(t, action.TypeTrackRemove, n.action.Type())
		assert.Equal(t, action.FlagNoSpend, n.action.Flags())
	}
}

func TestRideDemolish_ForcesRemovalWhenNestedRemovalFails(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 1, "wooden_coaster")
	ghost := placeTrack(h.world, ride, park.TileCoordsXY{X: 1, Y: 1}, 16, 0, park.TrackFlat, 0)
	ghost.Ghost = true
	unowned := park.TileCoordsXY{X: 2, Y: 1}
	placeTrack(h.world, ride, unowned, 16, 0, park.TrackFlat, 0)
	h.world.Map.SetOwned(unowned, false)
	placeTrack(h.world, ride, park.TileCoordsXY{X: 3, Y: 1}, 16, 0, park.TrackFlat, 0)

	res := h.exec.Execute(action.NewRideDemolish(1, action.ModifyDemolish))

	require.True(t, res.Ok())
	assert.Equal(t, 0, countTrack(h.world, 1))
	assert.Equal(t, money.Refund(120), res.Cost, "only the piece removed normally is refunded")

	failed := 0
	for _, n := range h.nested() {
		if !n.result.Ok() {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}

func TestRideDemolish_MazeStopsAtFirstFailedSubCell(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 4, "hedge_maze")
	tile := park.TileCoordsXY{X: 6, Y: 6}
	// Sub-cell 2 is already clear, so its fill fails.
	placeMaze(h.world, ride, tile, 16, 0b1011)

	res := h.exec.Execute(action.NewRideDemolish(4, action.ModifyDemolish))

	require.True(t, res.Ok())
	assert.Equal(t, 2*money.Refund(80), res.Cost)
	assert.Equal(t, 0, countTrack(h.world, 4))

	nested := h.nested()
	require.Len(t, nested, 3, "sub-cell 3 is never attempted")
	for i, n := range nested {
		fill, ok := n.action.(*action.MazeSetTrack)
		require.True(t, ok)
		assert.Equal(t, action.MazeFill, fill.Mode())
		assert.Equal(t, park.Direction(i), fill.Loc().Direction)
	}
	assert.True(t, nested[0].result.Ok())
	assert.True(t, nested[1].result.Ok())
	assert.Equal(t, action.StatusDisallowed, nested[2].result.Status)
}

func TestRideDemolish_FullMazeRefundsEverySegment(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 4, "hedge_maze")
	placeMaze(h.world, ride, park.TileCoordsXY{X: 6, Y: 6}, 16, 0b1111)
	placeMaze(h.world, ride, park.TileCoordsXY{X: 7, Y: 6}, 16, 0b1111)

	res := h.exec.Execute(action.NewRideDemolish(4, action.ModifyDemolish))

	require.True(t, res.Ok())
	assert.Equal(t, 8*money.Refund(80), res.Cost)
	assert.Equal(t, 0, countTrack(h.world, 4))
	assert.Len(t, h.nested(), 8)
}

func TestRideDemolish_ScrubsGuestMemory(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 7, "go_karts")
	ride.Status = park.RideStatusOpen
	placeTrack(h.world, ride, park.TileCoordsXY{X: 1, Y: 1}, 16, 0, park.TrackFlat, 0)

	g := h.world.AddGuest(park.NewGuest("Ann"))
	g.RidesBeenOn.Set(7)
	g.RidesBeenOn.Set(8)
	g.State = park.PeepStateWatching
	g.CurrentRide = 7
	g.TimeToStand = 200
	g.GiveItem(park.ItemVoucher)
	g.VoucherType = park.VoucherRideFree
	g.VoucherRideID = 7
	for slot, item := range park.PhotoItems {
		g.GiveItem(item)
		g.PhotoRides[slot] = 7
	}
	g.HeadingToRide = 7
	g.FavouriteRide = 7
	g.Thoughts.Add(park.Thought{Type: park.ThoughtHungry, Item: park.ThoughtItemNone})
	g.Thoughts.Add(park.Thought{Type: park.ThoughtRideWasGreat, Item: 7})
	g.Thoughts.Add(park.Thought{Type: park.ThoughtQueueTooLong, Item: 7})
	g.Thoughts.Add(park.Thought{Type: park.ThoughtSick, Item: 8})

	rider := h.world.AddGuest(park.NewGuest("Bo"))
	rider.State = park.PeepStateOnRide
	rider.CurrentRide = 7
	queuer := h.world.AddGuest(park.NewGuest("Cy"))
	queuer.State = park.PeepStateQueuing
	queuer.CurrentRide = 7

	res := h.exec.Execute(action.NewRideDemolish(7, action.ModifyDemolish))
	require.True(t, res.Ok())

	assert.False(t, g.RidesBeenOn.Has(7))
	assert.True(t, g.RidesBeenOn.Has(8))
	assert.Equal(t, park.RideIDNull, g.CurrentRide)
	assert.Equal(t, uint8(park.StandTimeLimit), g.TimeToStand)
	assert.False(t, g.HasItem(park.ItemVoucher))
	for _, item := range park.PhotoItems {
		assert.False(t, g.HasItem(item))
	}
	assert.Equal(t, park.RideIDNull, g.HeadingToRide)
	assert.Equal(t, park.RideIDNull, g.FavouriteRide)
	assert.Equal(t, []park.Thought{
		{Type: park.ThoughtSick, Item: 8},
		{Type: park.ThoughtHungry, Item: park.ThoughtItemNone},
	}, g.Thoughts.Valid())

	assert.Equal(t, park.PeepStateWalking, rider.State)
	assert.Equal(t, park.PeepStateWalking, queuer.State)
	assert.Equal(t, park.RideIDNull, queuer.CurrentRide)
}

func TestRideDemolish_DetachesBannersCampaignsNewsAndEntrances(t *testing.T) {
	h := newHarness(t)
	ride := addRide(t, h.world, 3, "wooden_coaster")
	placeTrack(h.world, ride, park.TileCoordsXY{X: 1, Y: 1}, 16, 0, park.TrackFlat, 0)
	entrance := &park.TileElement{Type: park.ElementEntrance, RideIndex: 3}
	h.world.Map.Insert(park.TileCoordsXY{X: 1, Y: 2}, entrance)

	_, linked := placeBanner(t, h.world, park.TileCoordsXY{X: 2, Y: 2}, 32, 0, "pole_banner")
	linked.Flags |= park.BannerFlagLinkedToRide
	linked.RideIndex = 3
	linked.Text = "Thunder"

	h.world.Campaigns = []park.Campaign{{Type: park.CampaignRide, RideID: 3}, {Type: park.CampaignPark}}
	h.world.News = []park.NewsItem{{Type: park.NewsRide, Assoc: 3}, {Type: park.NewsRide, Assoc: 4}}

	res := h.exec.Execute(action.NewRideDemolish(3, action.ModifyDemolish))
	require.True(t, res.Ok())

	assert.Zero(t, linked.Flags&park.BannerFlagLinkedToRide)
	assert.Empty(t, linked.Text)
	assert.Equal(t, []park.Campaign{{Type: park.CampaignPark}}, h.world.Campaigns)
	assert.True(t, h.world.News[0].Disabled)
	assert.False(t, h.world.News[1].Disabled)
	assert.False(t, h.world.Map.Contains(park.TileCoordsXY{X: 1, Y: 2}, entrance))
	assert.Equal(t, h.world.CalculateParkValue(), h.world.ParkValue)

	assert.Equal(t, 3, h.intents.Count(notify.KindBroadcast))
	assert.Equal(t, 3, h.intents.Count(notify.KindCloseWindowByNumber))
	assert.Equal(t, 1, h.intents.Count(notify.KindInvalidateScreen))
	require.NotNil(t, res.Position)
	assert.Equal(t, park.CoordsXYZ{X: 48, Y: 48, Z: 0}, *res.Position)
}

func TestRideDemolish_IndestructibleNoClearance(t *testing.T) {
	for _, flag := range []park.LifecycleFlags{park.LifecycleIndestructible, park.LifecycleIndestructibleTrack} {
		h := newHarness(t)
		ride := addRide(t, h.world, 1, "wooden_coaster")
		ride.Lifecycle |= flag
		res := h.exec.Execute(action.NewRideDemolish(1, action.ModifyDemolish))
		assert.Equal(t, action.StatusNoClearance, res.Status)
		assert.NotNil(t, h.world.Rides.Get(1))
	}
}

func TestRideDemolish_MissingRide(t *testing.T) {
	h := newHarness(t)
	res := h.exec.Execute(action.NewRideDemolish(9, action.ModifyDemolish))
	assert.Equal(t, action.StatusInvalidParameters, res.Status)
	assert.Equal(t, money.Undefined, res.Cost)
}

func TestRideDemolish_Cooldown(t *testing.T) {
	h := newHarness(t)
	addRide(t, h.world, 1, "go_karts")
	addRide(t, h.world, 2, "go_karts")

	require.True(t, h.exec.Execute(action.NewRideDemolish(1, action.ModifyDemolish)).Ok())
	res := h.exec.Execute(action.NewRideDemolish(2, action.ModifyDemolish))
	assert.Equal(t, action.StatusDisallowed, res.Status)
	assert.Equal(t, action.StrActionOnCooldown, res.ErrorMessage)

	other := action.NewRideDemolish(2, action.ModifyDemolish)
	other.SetPlayerID(5)
	assert.True(t, h.exec.Execute(other).Ok(), "cooldowns are per player")

	addRide(t, h.world, 3, "go_karts")
	h.world.Tick += action.DemolishCooldownTicks
	assert.True(t, h.exec.Execute(action.NewRideDemolish(3, action.ModifyDemolish)).Ok())
}

func refurbishable(t testing.TB, w *park.World) *park.Ride {
	ride := addRide(t, w, 1, "wooden_coaster")
	ride.Lifecycle |= park.LifecycleEverBeenOpened
	placeTrack(w, ride, park.TileCoordsXY{X: 1, Y: 1}, 16, 0, park.TrackFlat, 0)
	placeTrack(w, ride, park.TileCoordsXY{X: 2, Y: 1}, 16, 0, park.TrackLeftQuarterTurn, 0)
	return ride
}

func TestRideDemolish_RefurbishChargesHalfRefund(t *testing.T) {
	h := newHarness(t)
	ride := refurbishable(t, h.world)
	ride.Reliability = 100
	ride.Downtime = 40
	ride.LastCrashType = park.CrashFatalities
	h.world.Tick = 500

	res := h.exec.Execute(action.NewRideDemolish(1, action.ModifyRenew))

	require.True(t, res.Ok(), res.Message())
	// refund is -(90+270) = -360; fee is 180
	assert.Equal(t, money.Money(180), res.Cost)
	assert.Equal(t, testCash-180, h.world.Finances.Cash)
	assert.Equal(t, uint16(park.RideInitialReliability), ride.Reliability)
	assert.Zero(t, ride.Downtime)
	assert.Equal(t, uint32(500), ride.BuildTick)
	assert.False(t, ride.HasLifecycle(park.LifecycleEverBeenOpened))
	assert.Equal(t, park.CrashNone, ride.LastCrashType)
	assert.Equal(t, 2, countTrack(h.world, 1))
}

func TestRideDemolish_RefurbishRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *park.Ride)
		message action.StringID
	}{
		{"open", func(r *park.Ride) { r.Status = park.RideStatusOpen }, action.StrMustBeClosedFirst},
		{"testing", func(r *park.Ride) { r.Status = park.RideStatusTesting }, action.StrMustBeClosedFirst},
		{"riders", func(r *park.Ride) { r.NumRiders = 1 }, action.StrRideNotYetEmpty},
		{"never opened", func(r *park.Ride) { r.Lifecycle &^= park.LifecycleEverBeenOpened }, action.StrCantRefurbishNotNeeded},
		{"no breakdowns", func(r *park.Ride) { r.Type = "hedge_maze" }, action.StrCantRefurbishNotNeeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			ride := refurbishable(t, h.world)
			tc.mutate(ride)
			res := h.exec.Execute(action.NewRideDemolish(1, action.ModifyRenew))
			assert.Equal(t, action.StatusDisallowed, res.Status)
			assert.Equal(t, tc.message, res.ErrorMessage)
			assert.Equal(t, testCash, h.world.Finances.Cash)
		})
	}
}

func TestProperty_Refurbish_DisallowedWithRiders(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := newTestWorld(t)
		exec := action.NewExecutor(w, notify.Discard, testLogger(t))
		ride := addRide(t, w, 1, "wooden_coaster")
		ride.Status = park.RideStatus(rapid.IntRange(0, 3).Draw(rt, "status"))
		ride.Lifecycle = park.LifecycleFlags(rapid.Uint32Range(0, 63).Draw(rt, "lifecycle"))
		ride.NumRiders = rapid.Uint16Range(1, 1000).Draw(rt, "riders")

		res := exec.Execute(action.NewRideDemolish(1, action.ModifyRenew))
		if res.Status != action.StatusDisallowed {
			rt.Fatalf("refurbishing a ride with %d riders returned %s", ride.NumRiders, res.Status)
		}
	})
}

func TestProperty_Demolish_LeavesNoReferences(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := newTestWorld(t)
		exec := action.NewExecutor(w, notify.Discard, testLogger(t))
		ride := addRide(t, w, 5, "wooden_coaster")
		n := rapid.IntRange(0, 12).Draw(rt, "pieces")
		for i := 0; i < n; i++ {
			tile := park.TileCoordsXY{
				X: int32(rapid.IntRange(0, 15).Draw(rt, "x")),
				Y: int32(rapid.IntRange(0, 15).Draw(rt, "y")),
			}
			e := placeTrack(w, ride, tile, 16, 0, park.TrackFlat, 0)
			e.Ghost = rapid.Bool().Draw(rt, "ghost")
		}
		guests := rapid.IntRange(0, 5).Draw(rt, "guests")
		for i := 0; i < guests; i++ {
			g := w.AddGuest(park.NewGuest("guest"))
			g.FavouriteRide = 5
			g.RidesBeenOn.Set(5)
			thoughts := rapid.IntRange(0, park.MaxThoughts).Draw(rt, "thoughts")
			for j := 0; j < thoughts; j++ {
				item := uint16(rapid.SampledFrom([]int{5, 6}).Draw(rt, "item"))
				g.Thoughts.Add(park.Thought{Type: park.ThoughtRideWasGreat, Item: item})
			}
		}

		res := exec.Execute(action.NewRideDemolish(5, action.ModifyDemolish))
		if !res.Ok() {
			rt.Fatalf("demolish failed: %s", res.Message())
		}
		if got := countTrack(w, 5); got != 0 {
			rt.Fatalf("%d track elements of the ride remain", got)
		}
		for _, g := range w.Guests {
			if g.FavouriteRide == 5 || g.RidesBeenOn.Has(5) {
				rt.Fatalf("guest %d still references ride", g.ID)
			}
			entries := g.Thoughts.Entries()
			seenNone := false
			for _, th := range entries {
				if th.Type == park.ThoughtNone {
					seenNone = true
					continue
				}
				if seenNone {
					rt.Fatalf("gap in thought queue: %+v", entries)
				}
				if th.Item == 5 {
					rt.Fatalf("thought about ride survived: %+v", entries)
				}
			}
		}
	})
}
