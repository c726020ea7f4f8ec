// Package action implements the game action core: every authoritative world
// mutation is an Action that is validated by Query and applied by Execute,
// dispatched through an Executor, and encoded for replication and replay by
// a single parameter visitor.
package action

import (
	"fmt"

	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// Status is the outcome category of a Query or Execute call. The zero value
// is StatusOk.
type Status uint8

const (
	StatusOk Status = iota
	StatusInvalidParameters
	StatusNotOwned
	StatusNoClearance
	StatusDisallowed
	StatusInsufficientFunds
	StatusGamePaused
)

// String returns the snake_case status name.
func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusInvalidParameters:
		return "invalid_parameters"
	case StatusNotOwned:
		return "not_owned"
	case StatusNoClearance:
		return "no_clearance"
	case StatusDisallowed:
		return "disallowed"
	case StatusInsufficientFunds:
		return "insufficient_funds"
	case StatusGamePaused:
		return "game_paused"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// StringID identifies a user-visible message. The presentation layer owns
// translation; the core only picks the id.
type StringID uint16

const (
	StrNone StringID = iota
	StrCantDoThis
	StrCantRemoveThis
	StrCantDemolishRide
	StrCantRefurbishRide
	StrCantRemoveTrack
	StrCantBuildMaze
	StrCantChangeStaffColour
	StrLandNotOwnedByPark
	StrLocalAuthorityForbidsDemolition
	StrMustBeClosedFirst
	StrRideNotYetEmpty
	StrCantRefurbishNotNeeded
	StrNotEnoughCash
	StrNotAllowedWhilePaused
	StrActionOnCooldown
	StrInvalidColour
	StrTooLowOrTooHigh
	StrSegmentAlreadyClear
	StrTooMuchScenery
	StrScriptRejected
)

var stringTable = [...]string{
	StrNone:                            "",
	StrCantDoThis:                      "Can't do this...",
	StrCantRemoveThis:                  "Can't remove this...",
	StrCantDemolishRide:                "Can't demolish ride/attraction...",
	StrCantRefurbishRide:               "Can't refurbish ride/attraction...",
	StrCantRemoveTrack:                 "Can't remove this track piece...",
	StrCantBuildMaze:                   "Can't build this maze section...",
	StrCantChangeStaffColour:           "Can't change staff uniform colour...",
	StrLandNotOwnedByPark:              "Land not owned by park!",
	StrLocalAuthorityForbidsDemolition: "Local authority forbids demolition or modifications to this ride!",
	StrMustBeClosedFirst:               "Ride must be closed first",
	StrRideNotYetEmpty:                 "Ride is not yet empty",
	StrCantRefurbishNotNeeded:          "Ride does not need refurbishing",
	StrNotEnoughCash:                   "Not enough cash",
	StrNotAllowedWhilePaused:           "Construction is not possible while the game is paused",
	StrActionOnCooldown:                "Please wait before trying that again",
	StrInvalidColour:                   "Invalid colour",
	StrTooLowOrTooHigh:                 "Too low or too high!",
	StrSegmentAlreadyClear:             "Nothing to remove here",
	StrTooMuchScenery:                  "Too many banners in park",
	StrScriptRejected:                  "Rejected by park script",
}

// String returns the English text for id, or "string(N)" for unknown ids.
func (id StringID) String() string {
	if int(id) < len(stringTable) {
		return stringTable[id]
	}
	return fmt.Sprintf("string(%d)", uint16(id))
}

// Result is the outcome of one Query or Execute call. Every call produces a
// fresh Result.
//
// Invariant: Cost is meaningful only when Status is StatusOk; failed results
// carry money.Undefined.
type Result struct {
	Status       Status
	Cost         money.Money
	Expenditure  money.ExpenditureType
	ErrorTitle   StringID
	ErrorMessage StringID
	// Position is the world location the UI should focus on; nil when the
	// action has none.
	Position *park.CoordsXYZ
}

// OK returns a successful zero-cost Result.
func OK() *Result {
	return &Result{Status: StatusOk}
}

// Fail returns a failed Result with an undefined cost.
//
// Precondition: status != StatusOk.
func Fail(status Status, title, message StringID) *Result {
	return &Result{
		Status:       status,
		Cost:         money.Undefined,
		ErrorTitle:   title,
		ErrorMessage: message,
	}
}

// Ok reports whether the result is a success.
func (r *Result) Ok() bool {
	return r.Status == StatusOk
}

// Message returns the title and detail joined for logs and remote clients.
func (r *Result) Message() string {
	switch {
	case r.ErrorMessage == StrNone:
		return r.ErrorTitle.String()
	case r.ErrorTitle == StrNone:
		return r.ErrorMessage.String()
	default:
		return r.ErrorTitle.String() + " " + r.ErrorMessage.String()
	}
}

// withPosition sets the focus position and returns r.
func (r *Result) withPosition(c park.CoordsXYZ) *Result {
	r.Position = &c
	return r
}
