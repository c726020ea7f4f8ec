package sim

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/action"
)

// TickFunc is called after every tick with the tick number that just ran
// and the submissions it executed.
type TickFunc func(tick uint32, ran []*Submission)

// Loop owns the executor and the world behind it. All world mutation goes
// through Step, which is serialised by the loop's mutex.
type Loop struct {
	exec     *action.Executor
	queue    *Queue
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	onTick  []TickFunc
	running sync.WaitGroup
}

// NewLoop creates a stopped Loop ticking every interval.
//
// Precondition: exec and logger must not be nil; interval must be > 0.
// Postcondition: Returns a Loop with an empty queue.
func NewLoop(exec *action.Executor, interval time.Duration, logger *zap.Logger) *Loop {
	if interval <= 0 {
		panic("sim.NewLoop: interval must be > 0")
	}
	return &Loop{
		exec:     exec,
		queue:    &Queue{},
		interval: interval,
		logger:   logger,
	}
}

// Executor returns the loop's executor.
func (l *Loop) Executor() *action.Executor { return l.exec }

// Queue returns the loop's submission queue.
func (l *Loop) Queue() *Queue { return l.queue }

// OnTick registers fn to run at the end of every tick, inside the loop.
func (l *Loop) OnTick(fn TickFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onTick = append(l.onTick, fn)
}

// Submit queues a for the next tick.
func (l *Loop) Submit(a action.Action) (*Submission, error) {
	return l.queue.Push(a)
}

// Step runs one tick synchronously: every queued action is executed in
// receipt order and its submission resolved, then the world tick advances
// unless the game is paused.
//
// Postcondition: Returns the number of actions executed.
func (l *Loop) Step() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.exec.World()
	tick := w.Tick
	ran := l.queue.Drain()
	for _, s := range ran {
		s.resolve(l.exec.Execute(s.Action), nil)
	}
	if !w.Paused {
		w.Tick++
	}
	for _, fn := range l.onTick {
		fn(tick, ran)
	}
	if len(ran) > 0 {
		l.logger.Debug("tick",
			zap.Uint32("tick", tick),
			zap.Int("actions", len(ran)),
			zap.Bool("paused", w.Paused),
		)
	}
	return len(ran)
}

// Start begins ticking in a background goroutine until ctx is cancelled.
//
// Postcondition: When ctx ends the queue is closed and pending submissions
// fail with ErrQueueClosed. Wait blocks until the goroutine has exited.
func (l *Loop) Start(ctx context.Context) {
	l.running.Add(1)
	go func() {
		defer l.running.Done()
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		l.logger.Info("simulation loop started", zap.Duration("interval", l.interval))
		for {
			select {
			case <-ctx.Done():
				l.queue.Close()
				l.logger.Info("simulation loop stopped", zap.Uint32("tick", l.exec.World().Tick))
				return
			case <-ticker.C:
				l.Step()
			}
		}
	}()
}

// Wait blocks until a goroutine launched by Start has returned.
func (l *Loop) Wait() { l.running.Wait() }
