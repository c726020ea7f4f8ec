package journal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/park"
	"github.com/cory-johannsen/parksim/internal/journal"
)

// newPark returns a small owned park with a go-kart track and a banner.
func newPark(t *testing.T) *park.World {
	t.Helper()
	w := park.NewWorld(8, park.DefaultCatalog())
	w.Finances.Cash = 10000
	w.Map.ForEachTile(func(tile park.TileCoordsXY) bool {
		w.Map.SetOwned(tile, true)
		w.Map.Insert(tile, &park.TileElement{Type: park.ElementSurface})
		return true
	})
	r := &park.Ride{ID: 0, Type: "go_karts", Name: "Karts"}
	require.NoError(t, w.Rides.Add(r))
	for x := int32(1); x <= 3; x++ {
		w.Map.Insert(park.TileCoordsXY{X: x, Y: 2}, &park.TileElement{
			Type:      park.ElementTrack,
			BaseZ:     16,
			RideIndex: 0,
			TrackType: park.TrackFlat,
		})
	}
	idx, err := w.Banners.Create(&park.Banner{Type: "pole_banner", RideIndex: park.RideIDNull})
	require.NoError(t, err)
	w.Map.Insert(park.TileCoordsXY{X: 5, Y: 5}, &park.TileElement{Type: park.ElementBanner, BaseZ: 32, BannerIndex: idx})
	return w
}

func session() []action.Action {
	return []action.Action{
		action.NewTrackRemove(park.TrackFlat, 0, park.CoordsXYZD{X: 64, Y: 64, Z: 16}),
		action.NewStaffSetColour(park.StaffMechanic, 3),
		action.NewBannerRemove(park.CoordsXYZD{X: 160, Y: 160, Z: 32}),
		action.NewMazeSetTrack(park.CoordsXYZD{X: 32, Y: 32, Z: 16}, true, 0, action.MazeBuild),
		action.NewRideDemolish(0, action.ModifyDemolish),
	}
}

// record runs the session through an executor journaling to path and
// returns the final world.
func record(t *testing.T, path string) *park.World {
	t.Helper()
	fw, err := journal.OpenFileWriter(path)
	require.NoError(t, err)
	w := newPark(t)
	exec := action.NewExecutor(w, nil, zaptest.NewLogger(t))
	exec.SetJournal(journal.Recorder{Store: fw})
	for _, a := range session() {
		exec.Execute(a)
		w.Tick += 3
	}
	require.NoError(t, fw.Close())
	return w
}

func TestFileWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "park", "journal"+journal.FileExt)
	record(t, path)

	entries, err := journal.ReadFile(path)
	require.NoError(t, err)
	// The maze build is rejected: ride 0 is not a maze.
	require.Len(t, entries, 4)
	assert.Equal(t, "track_remove", entries[0].Type)
	assert.Equal(t, uint32(0), entries[0].Tick)
	assert.Equal(t, "ok", entries[0].Status)
	assert.Equal(t, int64(money.Refund(40)), entries[0].Cost)
	assert.Equal(t, "ride_demolish", entries[3].Type)
	assert.Equal(t, uint32(12), entries[3].Tick)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestFileWriter_AppendsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal"+journal.FileExt)
	for i := 0; i < 2; i++ {
		fw, err := journal.OpenFileWriter(path)
		require.NoError(t, err)
		a := action.NewStaffSetColour(park.StaffHandyman, park.Colour(i))
		require.NoError(t, fw.Append(journal.NewEntry(uint32(i), a, action.OK())))
		require.NoError(t, fw.Sync())
		require.NoError(t, fw.Close())
		require.NoError(t, fw.Close())
		assert.ErrorIs(t, fw.Append(journal.NewEntry(0, a, action.OK())), os.ErrClosed)
	}

	entries, err := journal.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(1), entries[1].Tick)
}

func TestReplay_ReproducesWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal"+journal.FileExt)
	want := record(t, path)
	entries, err := journal.ReadFile(path)
	require.NoError(t, err)

	got := newPark(t)
	stats, err := journal.Replay(got, action.DefaultRegistry(), entries, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Applied)
	assert.Equal(t, uint32(12), stats.Tick)
	assert.Equal(t, want.Finances, got.Finances)
	assert.Equal(t, want.StaffSettings, got.StaffSettings)
	assert.Equal(t, want.Map.ElementCount(), got.Map.ElementCount())
	assert.Nil(t, got.Rides.Get(0))
	assert.Equal(t, want.ParkValue, got.ParkValue)
}

func TestReplay_DetectsDesync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal"+journal.FileExt)
	record(t, path)
	entries, err := journal.ReadFile(path)
	require.NoError(t, err)

	w := newPark(t)
	w.Rides.Get(0).Lifecycle |= park.LifecycleIndestructibleTrack
	_, err = journal.Replay(w, action.DefaultRegistry(), entries, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, journal.ErrDesync)
}

func TestReplay_RejectsOutOfOrder(t *testing.T) {
	w := newPark(t)
	w.Tick = 10
	a := action.NewStaffSetColour(park.StaffHandyman, 1)
	entries := []journal.Entry{journal.NewEntry(3, a, action.OK())}
	_, err := journal.Replay(w, action.DefaultRegistry(), entries, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, journal.ErrOutOfOrder)
}

func TestReplay_RejectsCorruptPayload(t *testing.T) {
	w := newPark(t)
	e := journal.NewEntry(0, action.NewPauseToggle(), action.OK())
	e.Payload = e.Payload[:1]
	_, err := journal.Replay(w, action.DefaultRegistry(), []journal.Entry{e}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

type failing struct{ err error }

func (f failing) Append(journal.Entry) error { return f.err }

func TestTee_RecordsEverywhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal"+journal.FileExt)
	fw, err := journal.OpenFileWriter(path)
	require.NoError(t, err)
	boom := assert.AnError

	tee := journal.Tee{fw, failing{err: boom}}
	err = journal.Recorder{Store: tee}.Record(7, action.NewPauseToggle(), action.OK())
	assert.ErrorIs(t, err, boom)
	require.NoError(t, fw.Close())

	entries, err := journal.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pause_toggle", entries[0].Type)
}

func TestReplay_GhostActionsKeepTheirFlags(t *testing.T) {
	ghostBanner := func(w *park.World) {
		for _, e := range w.Map.ElementsAt(park.TileCoordsXY{X: 5, Y: 5}) {
			if e.Type == park.ElementBanner {
				e.Ghost = true
			}
		}
	}
	path := filepath.Join(t.TempDir(), "journal"+journal.FileExt)
	fw, err := journal.OpenFileWriter(path)
	require.NoError(t, err)
	w := newPark(t)
	ghostBanner(w)
	exec := action.NewExecutor(w, nil, zaptest.NewLogger(t))
	exec.SetJournal(journal.Recorder{Store: fw})
	a := action.NewBannerRemove(park.CoordsXYZD{X: 160, Y: 160, Z: 32})
	a.SetFlags(action.FlagGhost | action.FlagNetworkOrigin)
	require.True(t, exec.Execute(a).Ok())
	require.NoError(t, fw.Close())

	entries, err := journal.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := newPark(t)
	ghostBanner(got)
	_, err = journal.Replay(got, action.DefaultRegistry(), entries, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, w.Map.ElementCount(), got.Map.ElementCount())
}
