// Package sim runs the authoritative simulation tick: queued actions are
// executed in receipt order against a single world.
package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/cory-johannsen/parksim/internal/game/action"
)

// ErrQueueClosed is returned when an action is submitted after the loop
// stopped, and by Submission.Wait for actions the loop never ran.
var ErrQueueClosed = errors.New("sim: queue closed")

// Submission is one queued action awaiting its tick.
type Submission struct {
	// Seq is the receipt sequence number, starting at 1.
	Seq    uint64
	Action action.Action

	done   chan struct{}
	result *action.Result
	err    error
}

func (s *Submission) resolve(res *action.Result, err error) {
	s.result = res
	s.err = err
	close(s.done)
}

// Done is closed once the submission has a result or was abandoned.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until the loop has executed the action or ctx ends.
//
// Postcondition: Exactly one of the returned values is non-nil.
func (s *Submission) Wait(ctx context.Context) (*action.Result, error) {
	select {
	case <-s.done:
		return s.result, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Queue is a FIFO of submitted actions. It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	seq    uint64
	items  []*Submission
	closed bool
}

// Push appends a and stamps it with the next receipt sequence number.
//
// Precondition: a must not be nil.
// Postcondition: Returns ErrQueueClosed after Close.
func (q *Queue) Push(a action.Action) (*Submission, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	q.seq++
	s := &Submission{Seq: q.seq, Action: a, done: make(chan struct{})}
	q.items = append(q.items, s)
	return s, nil
}

// Drain removes and returns every queued submission in receipt order.
func (q *Queue) Drain() []*Submission {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued submissions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close rejects further pushes and abandons everything still queued.
//
// Postcondition: Every pending Submission.Wait returns ErrQueueClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	pending := q.items
	q.items = nil
	q.mu.Unlock()
	for _, s := range pending {
		s.resolve(nil, ErrQueueClosed)
	}
}
