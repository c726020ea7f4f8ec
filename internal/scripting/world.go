package scripting

import (
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// BindWorld points engine.park at w.
//
// Precondition: w must be non-nil. The hooks read w without locking, so they
// must only run on the goroutine that mutates it.
func (m *Manager) BindWorld(w *park.World) {
	m.QueryPark = func() ParkInfo {
		return ParkInfo{
			Tick:      w.Tick,
			Cash:      int64(w.Finances.Cash),
			ParkValue: int64(w.ParkValue),
			Paused:    w.Paused,
			Rides:     w.Rides.Count(),
			Guests:    len(w.Guests),
		}
	}
	m.QueryRide = func(id int) *RideInfo {
		if id < 0 || id >= park.MaxRides {
			return nil
		}
		r := w.Rides.Get(park.RideID(id))
		if r == nil {
			return nil
		}
		return &RideInfo{
			ID:        int(r.ID),
			Name:      r.Name,
			Type:      r.Type,
			Status:    r.Status.String(),
			NumRiders: int(r.NumRiders),
		}
	}
}
