package action

import (
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// StaffSetColour changes the uniform colour of one staff category and
// recolours every existing member of it.
type StaffSetColour struct {
	base
	staffType park.StaffType
	colour    park.Colour
}

// NewStaffSetColour returns an action giving staffType the colour uniform.
func NewStaffSetColour(staffType park.StaffType, colour park.Colour) *StaffSetColour {
	return &StaffSetColour{staffType: staffType, colour: colour}
}

func (a *StaffSetColour) Type() Type                { return TypeStaffSetColour }
func (a *StaffSetColour) Name() string              { return TypeStaffSetColour.String() }
func (a *StaffSetColour) ActionFlags() Flags        { return FlagAllowWhilePaused }
func (a *StaffSetColour) StaffType() park.StaffType { return a.staffType }
func (a *StaffSetColour) Colour() park.Colour       { return a.colour }
func (a *StaffSetColour) Serialise(s *Stream)       { a.serialise(s); a.AcceptParameters(s) }

func (a *StaffSetColour) AcceptParameters(v ParameterVisitor) {
	visitUint8(v, "staffType", &a.staffType)
	visitUint8(v, "colour", &a.colour)
}

func (a *StaffSetColour) validate() *Result {
	if a.has(FlagGhost) || !a.staffType.HasUniform() {
		return Fail(StatusInvalidParameters, StrCantChangeStaffColour, StrNone)
	}
	if a.colour >= park.ColourCount {
		return Fail(StatusInvalidParameters, StrCantChangeStaffColour, StrInvalidColour)
	}
	return nil
}

// Query accepts only uniformed categories and palette colours, and never a
// ghost.
func (a *StaffSetColour) Query(env *Env) *Result {
	if fail := a.validate(); fail != nil {
		return fail
	}
	return OK()
}

// Execute updates the category setting and then every existing staff member
// of the category.
func (a *StaffSetColour) Execute(env *Env) *Result {
	if fail := a.validate(); fail != nil {
		return fail
	}
	w := env.World
	if !w.StaffSettings.SetUniformColour(a.staffType, a.colour) {
		return Fail(StatusInvalidParameters, StrCantChangeStaffColour, StrNone)
	}
	w.RecolourStaff(a.staffType, a.colour)
	env.Sink.Notify(notify.Broadcast(notify.MessageRefreshStaffList))
	env.Sink.Notify(notify.InvalidateScreen())
	return OK()
}
