package park

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/parksim/internal/game/money"
)

// RideTypeDescriptor holds the static, per-ride-type pricing and capability
// data.
type RideTypeDescriptor struct {
	ID   string
	Name string
	// TrackPiecePrice is the base price of one track piece before the
	// shape's price factor is applied.
	TrackPiecePrice money.Money
	// MazeSegmentPrice is the price of one maze hedge segment.
	MazeSegmentPrice    money.Money
	AvailableBreakdowns uint32
	IsMaze              bool
}

// BannerEntry is a banner scenery object definition.
type BannerEntry struct {
	ID    string
	Name  string
	Price money.Money
}

// Catalog indexes ride type descriptors and banner scenery entries by id.
type Catalog struct {
	rideTypes map[string]*RideTypeDescriptor
	banners   map[string]*BannerEntry
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		rideTypes: make(map[string]*RideTypeDescriptor),
		banners:   make(map[string]*BannerEntry),
	}
}

// RegisterRideType adds d to the catalog.
//
// Postcondition: Returns an error on an empty or duplicate id.
func (c *Catalog) RegisterRideType(d *RideTypeDescriptor) error {
	if d.ID == "" {
		return fmt.Errorf("ride type id must not be empty")
	}
	if _, exists := c.rideTypes[d.ID]; exists {
		return fmt.Errorf("duplicate ride type %q", d.ID)
	}
	c.rideTypes[d.ID] = d
	return nil
}

// RegisterBanner adds e to the catalog.
//
// Postcondition: Returns an error on an empty or duplicate id.
func (c *Catalog) RegisterBanner(e *BannerEntry) error {
	if e.ID == "" {
		return fmt.Errorf("banner entry id must not be empty")
	}
	if _, exists := c.banners[e.ID]; exists {
		return fmt.Errorf("duplicate banner entry %q", e.ID)
	}
	c.banners[e.ID] = e
	return nil
}

// RideType returns the descriptor for id.
func (c *Catalog) RideType(id string) (*RideTypeDescriptor, bool) {
	d, ok := c.rideTypes[id]
	return d, ok
}

// Banner returns the banner scenery entry for id.
func (c *Catalog) Banner(id string) (*BannerEntry, bool) {
	e, ok := c.banners[id]
	return e, ok
}

// RideTypeCount returns the number of registered ride types.
func (c *Catalog) RideTypeCount() int { return len(c.rideTypes) }

// BannerCount returns the number of registered banner entries.
func (c *Catalog) BannerCount() int { return len(c.banners) }

// DefaultCatalog returns the built-in ride types and banners.
//
// Postcondition: Returns a non-nil Catalog; panics only on a programming
// error in the built-in tables.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, d := range []*RideTypeDescriptor{
		{ID: "wooden_coaster", Name: "Wooden Roller Coaster", TrackPiecePrice: 120, AvailableBreakdowns: 7},
		{ID: "junior_coaster", Name: "Junior Roller Coaster", TrackPiecePrice: 60, AvailableBreakdowns: 7},
		{ID: "go_karts", Name: "Go Karts", TrackPiecePrice: 40, AvailableBreakdowns: 2},
		{ID: "hedge_maze", Name: "Hedge Maze", MazeSegmentPrice: 80, IsMaze: true},
		{ID: "information_kiosk", Name: "Information Kiosk", TrackPiecePrice: 300},
	} {
		if err := c.RegisterRideType(d); err != nil {
			panic(fmt.Sprintf("building default catalog: %v", err))
		}
	}
	for _, e := range []*BannerEntry{
		{ID: "wooden_post_banner", Name: "Wooden Post Banner", Price: 40},
		{ID: "pole_banner", Name: "Pole Banner", Price: 60},
		{ID: "big_banner", Name: "Large Banner", Price: 120},
	} {
		if err := c.RegisterBanner(e); err != nil {
			panic(fmt.Sprintf("building default catalog: %v", err))
		}
	}
	return c
}

// yamlCatalogFile is the top-level YAML structure for catalog files.
type yamlCatalogFile struct {
	RideTypes []yamlRideType   `yaml:"ride_types"`
	Banners   []yamlBannerType `yaml:"banners"`
}

type yamlRideType struct {
	ID                  string `yaml:"id"`
	Name                string `yaml:"name"`
	TrackPiecePrice     int64  `yaml:"track_piece_price"`
	MazeSegmentPrice    int64  `yaml:"maze_segment_price"`
	AvailableBreakdowns uint32 `yaml:"available_breakdowns"`
	Maze                bool   `yaml:"maze"`
}

type yamlBannerType struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
}

// LoadCatalogFromFile reads a catalog YAML file.
//
// Precondition: path names a readable catalog YAML file.
// Postcondition: Returns a validated Catalog or a non-nil error.
func LoadCatalogFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	return LoadCatalogFromBytes(data)
}

// LoadCatalogFromBytes parses a catalog from YAML bytes.
//
// Postcondition: Returns a Catalog or an error on malformed YAML, empty or
// duplicate ids, or negative prices.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var file yamlCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	c := NewCatalog()
	for _, yr := range file.RideTypes {
		if yr.TrackPiecePrice < 0 || yr.MazeSegmentPrice < 0 {
			return nil, fmt.Errorf("ride type %q: prices must not be negative", yr.ID)
		}
		if err := c.RegisterRideType(&RideTypeDescriptor{
			ID:                  yr.ID,
			Name:                yr.Name,
			TrackPiecePrice:     money.Money(yr.TrackPiecePrice),
			MazeSegmentPrice:    money.Money(yr.MazeSegmentPrice),
			AvailableBreakdowns: yr.AvailableBreakdowns,
			IsMaze:              yr.Maze,
		}); err != nil {
			return nil, err
		}
	}
	for _, yb := range file.Banners {
		if yb.Price < 0 {
			return nil, fmt.Errorf("banner %q: price must not be negative", yb.ID)
		}
		if err := c.RegisterBanner(&BannerEntry{ID: yb.ID, Name: yb.Name, Price: money.Money(yb.Price)}); err != nil {
			return nil, err
		}
	}
	return c, nil
}
