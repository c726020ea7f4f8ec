package action

import (
	"fmt"
	"sort"

	"github.com/samber/oops"
)

// Factory returns a zero-parameter instance of one action kind, ready to be
// filled by a reading Stream.
type Factory func() Action

// Registry maps wire type ids to factories.
type Registry struct {
	factories map[Type]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Type]Factory)}
}

// Register adds f under t.
//
// Precondition: f returns actions whose Type() is t.
// Postcondition: Returns an error for the zero type or a duplicate id.
func (r *Registry) Register(t Type, f Factory) error {
	if t == 0 {
		return fmt.Errorf("action type 0 is reserved")
	}
	if _, exists := r.factories[t]; exists {
		return fmt.Errorf("duplicate action type %s", t)
	}
	r.factories[t] = f
	return nil
}

// New constructs an empty action of kind t.
//
// Postcondition: Returns a coded ACTION_UNKNOWN_TYPE error when t is not
// registered.
func (r *Registry) New(t Type) (Action, error) {
	f, ok := r.factories[t]
	if !ok {
		return nil, oops.Code(CodeUnknownType).With("type", uint16(t)).Errorf("unknown action type %d", uint16(t))
	}
	return f(), nil
}

// Types returns every registered id in ascending order.
func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultRegistry returns a Registry holding every built-in action.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for t, f := range map[Type]Factory{
		TypeBannerRemove:   func() Action { return &BannerRemove{} },
		TypeRideDemolish:   func() Action { return &RideDemolish{} },
		TypeTrackRemove:    func() Action { return &TrackRemove{} },
		TypeMazeSetTrack:   func() Action { return &MazeSetTrack{} },
		TypeStaffSetColour: func() Action { return &StaffSetColour{} },
		TypePauseToggle:    func() Action { return &PauseToggle{} },
	} {
		if err := r.Register(t, f); err != nil {
			panic(fmt.Sprintf("building default action registry: %v", err))
		}
	}
	return r
}
