package journal

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/action"
)

// DefaultBacklog is the queue capacity used when NewAsync is given none.
const DefaultBacklog = 4096

// ErrBacklogFull is returned by Async.Record when the writer has fallen
// behind by a full queue.
var ErrBacklogFull = errors.New("journal: writer backlog full")

// Async is an action.Journal that hands entries to a background writer, so
// recording never waits on the store. Entries reach the store in the order
// they were recorded.
type Async struct {
	store  Store
	logger *zap.Logger
	queue  chan Entry
	wg     sync.WaitGroup
}

// NewAsync creates a writer for store with room for backlog pending entries.
//
// Precondition: store and logger must not be nil.
// Postcondition: Entries are queued but not written until Start is called.
func NewAsync(store Store, backlog int, logger *zap.Logger) *Async {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	return &Async{store: store, logger: logger, queue: make(chan Entry, backlog)}
}

// Record implements action.Journal. The entry, payload included, is built
// before Record returns.
func (j *Async) Record(tick uint32, a action.Action, res *action.Result) error {
	e := NewEntry(tick, a, res)
	select {
	case j.queue <- e:
		return nil
	default:
		return ErrBacklogFull
	}
}

// Pending returns the number of queued entries not yet written.
func (j *Async) Pending() int { return len(j.queue) }

// Start launches the writer goroutine and returns. When ctx ends the writer
// drains whatever is queued and exits.
func (j *Async) Start(ctx context.Context) {
	j.wg.Add(1)
	go j.run(ctx)
}

// Wait blocks until the writer goroutine has exited.
func (j *Async) Wait() { j.wg.Wait() }

func (j *Async) run(ctx context.Context) {
	defer j.wg.Done()
	for {
		select {
		case e := <-j.queue:
			j.write(e)
		case <-ctx.Done():
			for {
				select {
				case e := <-j.queue:
					j.write(e)
				default:
					j.logger.Info("journal writer stopped")
					return
				}
			}
		}
	}
}

func (j *Async) write(e Entry) {
	if err := j.store.Append(e); err != nil {
		j.logger.Error("writing journal entry",
			zap.String("id", e.ID.String()),
			zap.String("type", e.Type),
			zap.Uint32("tick", e.Tick),
			zap.Error(err),
		)
	}
}
