package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/notify"
)

// PauseToggle pauses a running game or resumes a paused one.
type PauseToggle struct {
	base
}

// NewPauseToggle returns a pause toggle action.
func NewPauseToggle() *PauseToggle {
	return &PauseToggle{}
}

func (a *PauseToggle) Type() Type          { return TypePauseToggle }
func (a *PauseToggle) Name() string        { return TypePauseToggle.String() }
func (a *PauseToggle) ActionFlags() Flags  { return FlagAllowWhilePaused }
func (a *PauseToggle) Serialise(s *Stream) { a.serialise(s) }

// AcceptParameters visits nothing; the toggle has no parameters.
func (a *PauseToggle) AcceptParameters(ParameterVisitor) {}

// Query rejects a ghost toggle; pausing has no preview.
func (a *PauseToggle) Query(env *Env) *Result {
	if a.has(FlagGhost) {
		return Fail(StatusInvalidParameters, StrCantDoThis, StrNone)
	}
	return OK()
}

// Execute flips the paused state.
func (a *PauseToggle) Execute(env *Env) *Result {
	if fail := a.Query(env); !fail.Ok() {
		return fail
	}
	w := env.World
	w.Paused = !w.Paused
	env.Logger.Info("pause toggled", zap.Bool("paused", w.Paused), zap.Uint32("player", uint32(a.player)))
	env.Sink.Notify(notify.InvalidateScreen())
	return OK()
}
