// Package journal records executed actions and replays them onto a world.
package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/parksim/internal/game/action"
)

// Entry is one journaled top-level action.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Tick   uint32    `json:"tick"`
	Type   string    `json:"type"`
	Player uint32    `json:"player"`
	// Payload is the action wire encoding produced by action.Encode.
	Payload    []byte    `json:"payload"`
	Status     string    `json:"status"`
	Cost       int64     `json:"cost"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewEntry builds the journal entry for a executed at tick with result res.
//
// Precondition: a and res must not be nil.
// Postcondition: Returns an Entry with a fresh random ID.
func NewEntry(tick uint32, a action.Action, res *action.Result) Entry {
	return Entry{
		ID:         uuid.New(),
		Tick:       tick,
		Type:       a.Name(),
		Player:     uint32(a.PlayerID()),
		Payload:    action.Encode(a),
		Status:     res.Status.String(),
		Cost:       int64(res.Cost),
		RecordedAt: time.Now().UTC(),
	}
}

// Store persists entries. The file journal and the postgres repository both
// satisfy it.
type Store interface {
	Append(e Entry) error
}

// Recorder adapts a Store to action.Journal.
type Recorder struct {
	Store Store
}

// Record implements action.Journal.
func (r Recorder) Record(tick uint32, a action.Action, res *action.Result) error {
	return r.Store.Append(NewEntry(tick, a, res))
}

// Tee fans an entry out to several stores.
type Tee []Store

// Append implements Store. Every store is attempted; the errors are joined.
func (t Tee) Append(e Entry) error {
	var errs []error
	for _, s := range t {
		if err := s.Append(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
