package park

import (
	"fmt"
	"sort"
)

// RideID indexes the ride table.
type RideID uint16

const (
	// RideIDNull is the sentinel for "no ride".
	RideIDNull RideID = 0xFFFF
	// MaxRides is the capacity of the ride table.
	MaxRides = 255
)

// RideStatus is a ride's operating state.
type RideStatus uint8

const (
	RideStatusClosed RideStatus = iota
	RideStatusOpen
	RideStatusTesting
	RideStatusSimulating
)

// String returns the lowercase status name.
func (s RideStatus) String() string {
	switch s {
	case RideStatusClosed:
		return "closed"
	case RideStatusOpen:
		return "open"
	case RideStatusTesting:
		return "testing"
	case RideStatusSimulating:
		return "simulating"
	default:
		return "unknown"
	}
}

// ParseRideStatus converts a status name into a RideStatus.
func ParseRideStatus(s string) (RideStatus, error) {
	switch s {
	case "", "closed":
		return RideStatusClosed, nil
	case "open":
		return RideStatusOpen, nil
	case "testing":
		return RideStatusTesting, nil
	case "simulating":
		return RideStatusSimulating, nil
	default:
		return 0, fmt.Errorf("unknown ride status %q", s)
	}
}

// LifecycleFlags tracks a ride's operational history.
type LifecycleFlags uint32

const (
	LifecycleIndestructible LifecycleFlags = 1 << iota
	LifecycleIndestructibleTrack
	LifecycleEverBeenOpened
	LifecycleBrokenDown
	LifecycleCrashed
	LifecycleOnTrack
)

// CrashType records the most recent crash a ride suffered.
type CrashType uint8

const (
	CrashNone CrashType = iota
	CrashNoFatalities
	CrashFatalities
)

// InvalidateFlags mark which ride window tabs need redrawing.
type InvalidateFlags uint8

const (
	InvalidateRideCustomer InvalidateFlags = 1 << iota
	InvalidateRideIncome
	InvalidateRideMain
	InvalidateRideList
	InvalidateRideOperating
	InvalidateRideMaintenance
)

// RideInitialReliability is the reliability of a newly built or renewed ride.
const RideInitialReliability = (100 << 8) | 0xFF

// Ride is one attraction in the park.
type Ride struct {
	ID          RideID
	Type        string
	Name        string
	Status      RideStatus
	Lifecycle   LifecycleFlags
	NumRiders   uint16
	Reliability uint16
	Downtime    uint8
	BuildTick   uint32
	// OverallView is the camera focus for the ride; nil when unset.
	OverallView      *CoordsXY
	LastCrashType    CrashType
	WindowInvalidate InvalidateFlags
}

// HasLifecycle reports whether all bits of f are set.
func (r *Ride) HasLifecycle(f LifecycleFlags) bool {
	return r.Lifecycle&f == f
}

// Renew resets the ride's wear as if newly built at tick.
//
// Postcondition: Reliability is RideInitialReliability, Downtime is 0,
// and BuildTick is tick.
func (r *Ride) Renew(tick uint32) {
	r.BuildTick = tick
	r.Reliability = RideInitialReliability
	r.Downtime = 0
}

// RideTable holds up to MaxRides rides addressed by RideID.
type RideTable struct {
	rides [MaxRides]*Ride
}

// NewRideTable returns an empty RideTable.
func NewRideTable() *RideTable {
	return &RideTable{}
}

// Get returns the ride with the given id.
//
// Postcondition: Returns nil for RideIDNull, out-of-range ids, or free slots.
func (t *RideTable) Get(id RideID) *Ride {
	if int(id) >= MaxRides {
		return nil
	}
	return t.rides[id]
}

// Add places r in the slot named by r.ID.
//
// Precondition: r.ID < MaxRides.
// Postcondition: Returns an error if the slot is occupied or out of range.
func (t *RideTable) Add(r *Ride) error {
	if int(r.ID) >= MaxRides {
		return fmt.Errorf("ride id %d out of range", r.ID)
	}
	if t.rides[r.ID] != nil {
		return fmt.Errorf("ride id %d already in use", r.ID)
	}
	t.rides[r.ID] = r
	return nil
}

// Delete frees the slot for id. Deleting a free slot is a no-op.
func (t *RideTable) Delete(id RideID) {
	if int(id) < MaxRides {
		t.rides[id] = nil
	}
}

// Count returns the number of occupied slots.
func (t *RideTable) Count() int {
	n := 0
	for _, r := range t.rides {
		if r != nil {
			n++
		}
	}
	return n
}

// All returns the live rides in ascending id order.
func (t *RideTable) All() []*Ride {
	out := make([]*Ride, 0, MaxRides)
	for _, r := range t.rides {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// RideSet is a bitset over ride ids, one bit per id.
type RideSet [(MaxRides + 7) / 8]uint8

// Has reports whether id is in the set.
func (s *RideSet) Has(id RideID) bool {
	if int(id) >= MaxRides {
		return false
	}
	return s[id/8]&(1<<(id%8)) != 0
}

// Set adds id to the set. Out-of-range ids are ignored.
func (s *RideSet) Set(id RideID) {
	if int(id) < MaxRides {
		s[id/8] |= 1 << (id % 8)
	}
}

// Clear removes id from the set.
func (s *RideSet) Clear(id RideID) {
	if int(id) < MaxRides {
		s[id/8] &^= 1 << (id % 8)
	}
}

// TrackType identifies a track piece shape.
type TrackType uint16

const (
	TrackFlat TrackType = iota
	TrackEndStation
	TrackBeginStation
	TrackMiddleStation
	TrackUp25
	TrackDown25
	TrackLeftQuarterTurn
	TrackRightQuarterTurn
	TrackMaze TrackType = 101
)

var trackPriceFactors = map[TrackType]int64{
	TrackFlat:             1,
	TrackEndStation:       2,
	TrackBeginStation:     2,
	TrackMiddleStation:    2,
	TrackUp25:             2,
	TrackDown25:           2,
	TrackLeftQuarterTurn:  3,
	TrackRightQuarterTurn: 3,
}

var trackTypeNames = map[string]TrackType{
	"flat":               TrackFlat,
	"end_station":        TrackEndStation,
	"begin_station":      TrackBeginStation,
	"middle_station":     TrackMiddleStation,
	"up25":               TrackUp25,
	"down25":             TrackDown25,
	"left_quarter_turn":  TrackLeftQuarterTurn,
	"right_quarter_turn": TrackRightQuarterTurn,
	"maze":               TrackMaze,
}

// ParseTrackType converts a track piece name into a TrackType.
func ParseTrackType(s string) (TrackType, error) {
	t, ok := trackTypeNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown track type %q", s)
	}
	return t, nil
}

// PriceFactor returns the multiplier applied to a ride type's track piece
// price for this shape. Unknown shapes and maze track return 0.
func (t TrackType) PriceFactor() int64 {
	return trackPriceFactors[t]
}

// TrackTypeNames returns the known track piece names sorted alphabetically.
func TrackTypeNames() []string {
	names := make([]string, 0, len(trackTypeNames))
	for n := range trackTypeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
