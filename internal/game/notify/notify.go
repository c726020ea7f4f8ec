// Package notify is the fire-and-forget boundary between the action core and
// any presentation layer. Actions describe what changed as Intents; sinks
// decide whether anything redraws.
package notify

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Kind identifies the intent category.
type Kind uint8

const (
	KindInvalidateScreen Kind = iota
	KindInvalidateTile
	KindCloseWindowByNumber
	KindCloseWindowByClass
	KindBroadcast
	KindInvalidateScrollingText
)

// String returns the snake_case intent kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidateScreen:
		return "invalidate_screen"
	case KindInvalidateTile:
		return "invalidate_tile"
	case KindCloseWindowByNumber:
		return "close_window_by_number"
	case KindCloseWindowByClass:
		return "close_window_by_class"
	case KindBroadcast:
		return "broadcast"
	case KindInvalidateScrollingText:
		return "invalidate_scrolling_text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// WindowClass names a family of windows.
type WindowClass uint8

const (
	WindowRide WindowClass = iota
	WindowRideConstruction
	WindowTrackDesignPlace
	WindowDemolishRidePrompt
	WindowBanner
	WindowStaffList
	WindowNewCampaign
)

// Message is a broadcast refresh request.
type Message uint8

const (
	MessageRefreshRideList Message = iota
	MessageRefreshGuestList
	MessageRefreshCampaignRideList
	MessageRefreshStaffList
)

// Intent is one notification emitted after a world mutation. Only the fields
// relevant to Kind are set.
type Intent struct {
	Kind Kind
	// X, Y, Z0, Z1 bound the invalidated region for KindInvalidateTile.
	X, Y   int32
	Z0, Z1 int32
	Class  WindowClass
	Number uint32
	Msg    Message
}

// InvalidateScreen requests a full redraw.
func InvalidateScreen() Intent {
	return Intent{Kind: KindInvalidateScreen}
}

// InvalidateTile requests a redraw of the column at big coordinates (x, y)
// between heights z0 and z1.
func InvalidateTile(x, y, z0, z1 int32) Intent {
	return Intent{Kind: KindInvalidateTile, X: x, Y: y, Z0: z0, Z1: z1}
}

// CloseWindowByNumber closes the window of class bound to number.
func CloseWindowByNumber(class WindowClass, number uint32) Intent {
	return Intent{Kind: KindCloseWindowByNumber, Class: class, Number: number}
}

// CloseWindowByClass closes every window of class.
func CloseWindowByClass(class WindowClass) Intent {
	return Intent{Kind: KindCloseWindowByClass, Class: class}
}

// Broadcast sends msg to every open window.
func Broadcast(msg Message) Intent {
	return Intent{Kind: KindBroadcast, Msg: msg}
}

// InvalidateScrollingText requests a refresh of cached banner text.
func InvalidateScrollingText() Intent {
	return Intent{Kind: KindInvalidateScrollingText}
}

// Sink receives intents. Implementations must not call back into the world
// and must not block.
type Sink interface {
	Notify(Intent)
}

// Discard drops every intent.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(Intent) {}

// Recorder keeps every intent in memory in arrival order.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	intents []Intent
}

// Notify appends in to the recording.
func (r *Recorder) Notify(in Intent) {
	r.mu.Lock()
	r.intents = append(r.intents, in)
	r.mu.Unlock()
}

// Intents returns a copy of everything recorded so far.
func (r *Recorder) Intents() []Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Intent, len(r.intents))
	copy(out, r.intents)
	return out
}

// Drain returns everything recorded so far and resets the recording.
func (r *Recorder) Drain() []Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.intents
	r.intents = nil
	return out
}

// Count returns how many recorded intents are of kind k.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, in := range r.intents {
		if in.Kind == k {
			n++
		}
	}
	return n
}

// LogSink writes each intent to a zap logger at debug level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink.
//
// Precondition: logger must not be nil.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs in.
func (s *LogSink) Notify(in Intent) {
	s.logger.Debug("ui intent",
		zap.Stringer("kind", in.Kind),
		zap.Int32("x", in.X),
		zap.Int32("y", in.Y),
		zap.Uint8("class", uint8(in.Class)),
		zap.Uint32("number", in.Number),
		zap.Uint8("message", uint8(in.Msg)),
	)
}

// Fanout forwards each intent to every sink in order.
type Fanout []Sink

// Notify forwards in.
func (f Fanout) Notify(in Intent) {
	for _, s := range f {
		s.Notify(in)
	}
}
