package park

import "errors"

// BannerIndex addresses the banner table.
type BannerIndex uint16

const (
	// BannerIndexNull is the sentinel for "no banner".
	BannerIndexNull BannerIndex = 0xFFFF
	// MaxBanners is the capacity of the banner table.
	MaxBanners = 250
)

// ErrBannerTableFull is returned when no free banner slot remains.
var ErrBannerTableFull = errors.New("banner table full")

// BannerFlags describe a banner record.
type BannerFlags uint8

const (
	BannerFlagNoEntry BannerFlags = 1 << iota
	BannerFlagLinkedToRide
	BannerFlagIsLargeScenery
	BannerFlagIsWall
)

// Banner is the record behind a banner tile element: its scenery entry,
// text, and optional link to a ride.
type Banner struct {
	Index     BannerIndex
	Type      string
	Flags     BannerFlags
	RideIndex RideID
	Text      string
	Colour    Colour
}

// BannerTable holds banner records addressed by BannerIndex.
type BannerTable struct {
	banners [MaxBanners]*Banner
}

// NewBannerTable returns an empty BannerTable.
func NewBannerTable() *BannerTable {
	return &BannerTable{}
}

// Get returns the banner at i.
//
// Postcondition: Returns nil for BannerIndexNull, out-of-range, or free slots.
func (t *BannerTable) Get(i BannerIndex) *Banner {
	if int(i) >= MaxBanners {
		return nil
	}
	return t.banners[i]
}

// Create stores b in the lowest free slot and sets b.Index.
//
// Postcondition: Returns the assigned index, or ErrBannerTableFull.
func (t *BannerTable) Create(b *Banner) (BannerIndex, error) {
	for i := range t.banners {
		if t.banners[i] == nil {
			b.Index = BannerIndex(i)
			t.banners[i] = b
			return b.Index, nil
		}
	}
	return BannerIndexNull, ErrBannerTableFull
}

// Put stores b at b.Index, replacing any existing record.
//
// Precondition: b.Index < MaxBanners.
func (t *BannerTable) Put(b *Banner) {
	t.banners[b.Index] = b
}

// Free releases slot i. Freeing a free slot is a no-op.
func (t *BannerTable) Free(i BannerIndex) {
	if int(i) < MaxBanners {
		t.banners[i] = nil
	}
}

// All returns live banners in ascending index order.
func (t *BannerTable) All() []*Banner {
	var out []*Banner
	for _, b := range t.banners {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}
