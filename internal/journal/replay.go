package journal

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

var (
	// ErrOutOfOrder is returned when an entry's tick precedes the world tick.
	ErrOutOfOrder = errors.New("journal: entry tick precedes world tick")
	// ErrDesync is returned when a replayed action does not reproduce its
	// journaled outcome.
	ErrDesync = errors.New("journal: replay diverged from journal")
)

// ReplayStats summarises a replay.
type ReplayStats struct {
	Applied int
	Tick    uint32
}

// Replay decodes every entry and executes it against w through a fresh
// executor, setting the world tick to each entry's tick first.
//
// Precondition: w holds the state the journal was recorded from; entries
// are in journal order.
// Postcondition: On success w reflects every entry. On error, w reflects
// the entries before the failing one.
func Replay(w *park.World, reg *action.Registry, entries []Entry, logger *zap.Logger) (ReplayStats, error) {
	exec := action.NewExecutor(w, notify.Discard, logger)
	var stats ReplayStats
	for i, e := range entries {
		if e.Tick < w.Tick {
			return stats, fmt.Errorf("entry %d (%s) at tick %d, world at %d: %w", i, e.ID, e.Tick, w.Tick, ErrOutOfOrder)
		}
		a, err := action.Decode(reg, e.Payload)
		if err != nil {
			return stats, fmt.Errorf("entry %d (%s): %w", i, e.ID, err)
		}
		w.Tick = e.Tick
		res := exec.Execute(a)
		if res.Status.String() != e.Status || int64(res.Cost) != e.Cost {
			return stats, fmt.Errorf("entry %d (%s) %s: journaled %s cost %d, replayed %s cost %d: %w",
				i, e.ID, e.Type, e.Status, e.Cost, res.Status, int64(res.Cost), ErrDesync)
		}
		stats.Applied++
	}
	stats.Tick = w.Tick
	logger.Info("journal replayed", zap.Int("entries", stats.Applied), zap.Uint32("tick", stats.Tick))
	return stats, nil
}
