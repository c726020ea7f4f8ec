package park

import (
	"math/bits"

	"github.com/cory-johannsen/parksim/internal/game/money"
)

// GuestValue is what each guest in the park adds to the park value.
const GuestValue money.Money = 10

// World is the complete authoritative simulation state. It is mutated only
// from the simulation loop.
type World struct {
	Map           *TileMap
	Catalog       *Catalog
	Rides         *RideTable
	Banners       *BannerTable
	Guests        []*Guest
	Staff         []*Staff
	StaffSettings StaffSettings
	Campaigns     []Campaign
	News          []NewsItem
	Finances      Finances
	ParkValue     money.Money
	// Paused stops the tick counter; only actions allowed while paused run.
	Paused bool
	// Sandbox bypasses land ownership and funds checks.
	Sandbox bool
	Tick    uint32

	nextEntity EntityID
}

// NewWorld creates an empty park on a size x size map.
//
// Precondition: 0 < size <= MaxMapSize; catalog is non-nil.
// Postcondition: Returns a World with empty tables and default staff settings.
func NewWorld(size int32, catalog *Catalog) *World {
	return &World{
		Map:           NewTileMap(size),
		Catalog:       catalog,
		Rides:         NewRideTable(),
		Banners:       NewBannerTable(),
		StaffSettings: DefaultStaffSettings(),
	}
}

// AddGuest assigns g the next entity id and adds it to the park.
func (w *World) AddGuest(g *Guest) *Guest {
	g.ID = w.nextEntity
	w.nextEntity++
	w.Guests = append(w.Guests, g)
	return g
}

// AddStaff assigns s the next entity id and hires it.
func (w *World) AddStaff(s *Staff) *Staff {
	s.ID = w.nextEntity
	w.nextEntity++
	w.Staff = append(w.Staff, s)
	return s
}

// CanBuildAt reports whether the park may modify the world at c: the
// location is on the map, not below the tile's surface, and the land is
// owned (or the park is in sandbox mode).
func (w *World) CanBuildAt(c CoordsXYZ) bool {
	if !w.Map.LocationValid(c.XY()) || c.Z < 0 {
		return false
	}
	if c.Z < w.Map.SurfaceHeight(c.XY().ToTile()) {
		return false
	}
	if w.Sandbox {
		return true
	}
	return w.Map.Owned(c.XY().ToTile())
}

// TileHeight returns the ground height at the tile containing c.
func (w *World) TileHeight(c CoordsXY) int32 {
	return w.Map.SurfaceHeight(c.ToTile())
}

// TrackPieceRefund returns the refund for removing one non-maze track piece
// of trackType from a ride of rideType. Unknown ride types refund nothing.
func (w *World) TrackPieceRefund(rideType string, trackType TrackType) money.Money {
	desc, ok := w.Catalog.RideType(rideType)
	if !ok {
		return 0
	}
	return money.Refund(desc.TrackPiecePrice * money.Money(trackType.PriceFactor()))
}

// MazeSegmentRefund returns the refund for clearing one maze segment of a
// ride of rideType.
func (w *World) MazeSegmentRefund(rideType string) money.Money {
	desc, ok := w.Catalog.RideType(rideType)
	if !ok {
		return 0
	}
	return money.Refund(desc.MazeSegmentPrice)
}

// RideRefundPrice returns the total refund for removing every track piece
// and maze segment of r. The result is zero or negative.
func (w *World) RideRefundPrice(r *Ride) money.Money {
	var total money.Money
	w.Map.ForEachElement(func(_ TileCoordsXY, e *TileElement) bool {
		if e.Type != ElementTrack || e.RideIndex != r.ID {
			return true
		}
		if e.IsMaze() {
			total += money.Money(bits.OnesCount8(e.MazeMask)) * w.MazeSegmentRefund(r.Type)
			return true
		}
		total += w.TrackPieceRefund(r.Type, e.TrackType)
		return true
	})
	return total
}

// CalculateParkValue returns the aggregate park valuation: the replacement
// value of every ride's track plus a fixed amount per guest.
func (w *World) CalculateParkValue() money.Money {
	var value money.Money
	for _, r := range w.Rides.All() {
		value -= w.RideRefundPrice(r)
	}
	value += money.Money(len(w.Guests)) * GuestValue
	return value
}

// ClearForConstruction resets the transient operating state of r before its
// track is modified.
func (w *World) ClearForConstruction(r *Ride) {
	r.Lifecycle &^= LifecycleBrokenDown | LifecycleCrashed | LifecycleOnTrack
	r.WindowInvalidate |= InvalidateRideMain
}

// RemoveRidePeeps ejects every guest riding r and empties the ride.
//
// Postcondition: r.NumRiders == 0; no guest is entering, on, or leaving r.
// Returns the number of guests ejected.
func (w *World) RemoveRidePeeps(r *Ride) int {
	n := 0
	for _, g := range w.Guests {
		if g.CurrentRide != r.ID {
			continue
		}
		switch g.State {
		case PeepStateEnteringRide, PeepStateOnRide, PeepStateLeavingRide:
			g.State = PeepStateWalking
			g.CurrentRide = RideIDNull
			n++
		}
	}
	r.NumRiders = 0
	return n
}

// StopGuestsQueuing sends every guest queuing for r back to walking.
func (w *World) StopGuestsQueuing(r *Ride) int {
	n := 0
	for _, g := range w.Guests {
		if g.State == PeepStateQueuing && g.CurrentRide == r.ID {
			g.State = PeepStateWalking
			g.CurrentRide = RideIDNull
			n++
		}
	}
	return n
}

// RemoveRideEntrances deletes every entrance or exit element of r.
func (w *World) RemoveRideEntrances(r *Ride) int {
	type placed struct {
		t TileCoordsXY
		e *TileElement
	}
	var doomed []placed
	w.Map.ForEachElement(func(t TileCoordsXY, e *TileElement) bool {
		if e.Type == ElementEntrance && e.RideIndex == r.ID {
			doomed = append(doomed, placed{t, e})
		}
		return true
	})
	for _, p := range doomed {
		w.Map.Remove(p.t, p.e)
	}
	return len(doomed)
}

// UnlinkRideBanners detaches every banner linked to ride id and clears its
// text.
func (w *World) UnlinkRideBanners(id RideID) int {
	n := 0
	for _, b := range w.Banners.All() {
		if b.Flags&BannerFlagLinkedToRide != 0 && b.RideIndex == id {
			b.Flags &^= BannerFlagLinkedToRide
			b.Text = ""
			n++
		}
	}
	return n
}

// ForgetRide scrubs ride id from every guest's memory.
func (w *World) ForgetRide(id RideID) {
	for _, g := range w.Guests {
		g.ForgetRide(id)
	}
}

// CancelCampaignsForRide ends every campaign advertising ride id.
func (w *World) CancelCampaignsForRide(id RideID) int {
	kept := w.Campaigns[:0]
	cancelled := 0
	for _, c := range w.Campaigns {
		if c.Type.TargetsRide() && c.RideID == id {
			cancelled++
			continue
		}
		kept = append(kept, c)
	}
	w.Campaigns = kept
	return cancelled
}

// DisableNewsItems disables every news item of type t about assoc.
func (w *World) DisableNewsItems(t NewsType, assoc uint32) int {
	n := 0
	for i := range w.News {
		if w.News[i].Type == t && w.News[i].Assoc == assoc && !w.News[i].Disabled {
			w.News[i].Disabled = true
			n++
		}
	}
	return n
}

// RecolourStaff applies colour to the uniform of every existing staff member
// of type t.
//
// Postcondition: Staff of other types are unchanged. Returns the number
// recoloured.
func (w *World) RecolourStaff(t StaffType, colour Colour) int {
	n := 0
	for _, s := range w.Staff {
		if s.Type == t {
			s.TshirtColour = colour
			s.TrousersColour = colour
			n++
		}
	}
	return n
}

// HireStaff adds a staff member of type t wearing the current uniform.
func (w *World) HireStaff(name string, t StaffType) *Staff {
	s := &Staff{Name: name, Type: t}
	if c, ok := w.StaffSettings.UniformColour(t); ok {
		s.TshirtColour = c
		s.TrousersColour = c
	}
	return w.AddStaff(s)
}
