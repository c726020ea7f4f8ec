package park

import "fmt"

// StaffType is a staff member's job category.
type StaffType uint8

const (
	StaffHandyman StaffType = iota
	StaffMechanic
	StaffSecurity
	StaffEntertainer

	staffTypeCount
)

// String returns the lowercase category name.
func (t StaffType) String() string {
	switch t {
	case StaffHandyman:
		return "handyman"
	case StaffMechanic:
		return "mechanic"
	case StaffSecurity:
		return "security"
	case StaffEntertainer:
		return "entertainer"
	default:
		return fmt.Sprintf("staff_type(%d)", uint8(t))
	}
}

// ParseStaffType converts a category name into a StaffType.
func ParseStaffType(s string) (StaffType, error) {
	for t := StaffType(0); t < staffTypeCount; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown staff type %q", s)
}

// HasUniform reports whether the category wears a park-wide uniform colour.
// Entertainers wear costumes instead.
func (t StaffType) HasUniform() bool {
	return t == StaffHandyman || t == StaffMechanic || t == StaffSecurity
}

// Colour is a palette index.
type Colour uint8

// ColourCount is the number of palette colours.
const ColourCount = 32

// Default uniform colours per category.
const (
	DefaultHandymanColour Colour = 10
	DefaultMechanicColour Colour = 12
	DefaultSecurityColour Colour = 2
)

// Staff is an employee entity.
type Staff struct {
	ID             EntityID
	Name           string
	Type           StaffType
	TshirtColour   Colour
	TrousersColour Colour
}

// StaffSettings holds the park-wide uniform colour per uniformed category.
type StaffSettings struct {
	uniform [3]Colour
}

// DefaultStaffSettings returns the settings a new park starts with.
func DefaultStaffSettings() StaffSettings {
	return StaffSettings{uniform: [3]Colour{DefaultHandymanColour, DefaultMechanicColour, DefaultSecurityColour}}
}

// UniformColour returns the uniform colour for t.
//
// Postcondition: ok is false for categories without a uniform.
func (s *StaffSettings) UniformColour(t StaffType) (c Colour, ok bool) {
	if !t.HasUniform() {
		return 0, false
	}
	return s.uniform[t], true
}

// SetUniformColour changes the uniform colour for t.
//
// Postcondition: Returns false and changes nothing for categories without a
// uniform.
func (s *StaffSettings) SetUniformColour(t StaffType, c Colour) bool {
	if !t.HasUniform() {
		return false
	}
	s.uniform[t] = c
	return true
}
