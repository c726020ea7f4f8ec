package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/park"
	"github.com/cory-johannsen/parksim/internal/journal"
	"github.com/cory-johannsen/parksim/internal/storage/postgres"
	"github.com/cory-johannsen/parksim/internal/testutil"
)

func TestJournalRepository_AppendAndList(t *testing.T) {
	repo := postgres.NewJournalRepository(testutil.NewPool(t), 5*time.Second)
	ctx := context.Background()

	first := journal.NewEntry(3, action.NewStaffSetColour(park.StaffMechanic, 4), action.OK())
	second := journal.NewEntry(9, action.NewPauseToggle(), action.OK())
	require.NoError(t, repo.Append(first))
	require.NoError(t, repo.Append(second))

	all, err := repo.ListFrom(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, first.Payload, all[0].Payload)
	assert.Equal(t, "staff_set_colour", all[0].Type)
	assert.Equal(t, uint32(3), all[0].Tick)

	later, err := repo.ListFrom(ctx, 4)
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, second.ID, later[0].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestJournalRepository_DuplicateID(t *testing.T) {
	repo := postgres.NewJournalRepository(testutil.NewPool(t), 5*time.Second)
	e := journal.NewEntry(0, action.NewPauseToggle(), action.OK())
	require.NoError(t, repo.Append(e))
	assert.ErrorIs(t, repo.Append(e), postgres.ErrDuplicateEntry)
}

func TestJournalRepository_ReplayFromDatabase(t *testing.T) {
	repo := postgres.NewJournalRepository(testutil.NewPool(t), 5*time.Second)
	w := park.NewWorld(8, park.DefaultCatalog())
	exec := action.NewExecutor(w, nil, zaptest.NewLogger(t))
	exec.SetJournal(journal.Recorder{Store: repo})

	require.True(t, exec.Execute(action.NewStaffSetColour(park.StaffSecurity, 30)).Ok())
	w.Tick = 5
	require.True(t, exec.Execute(action.NewPauseToggle()).Ok())

	entries, err := repo.ListFrom(context.Background(), 0)
	require.NoError(t, err)

	replayed := park.NewWorld(8, park.DefaultCatalog())
	stats, err := journal.Replay(replayed, action.DefaultRegistry(), entries, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Applied)
	assert.True(t, replayed.Paused)
	assert.Equal(t, w.StaffSettings, replayed.StaffSettings)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
}
