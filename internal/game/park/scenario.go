package park

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/parksim/internal/game/money"
)

// yamlScenarioFile is the top-level YAML structure for scenario files.
type yamlScenarioFile struct {
	Scenario yamlScenario `yaml:"scenario"`
}

type yamlScenario struct {
	Name      string       `yaml:"name"`
	MapSize   int32        `yaml:"map_size"`
	Cash      int64        `yaml:"cash"`
	Sandbox   bool         `yaml:"sandbox"`
	OwnedLand []yamlRect   `yaml:"owned_land"`
	Rides     []yamlRide   `yaml:"rides"`
	Banners   []yamlBanner `yaml:"banners"`
	Guests    int          `yaml:"guests"`
	Staff     []yamlStaff  `yaml:"staff"`
}

type yamlRect struct {
	X0 int32 `yaml:"x0"`
	Y0 int32 `yaml:"y0"`
	X1 int32 `yaml:"x1"`
	Y1 int32 `yaml:"y1"`
}

type yamlRide struct {
	ID         uint16      `yaml:"id"`
	Type       string      `yaml:"type"`
	Name       string      `yaml:"name"`
	Status     string      `yaml:"status"`
	EverOpened bool        `yaml:"ever_opened"`
	Track      []yamlTrack `yaml:"track"`
}

type yamlTrack struct {
	X         int32  `yaml:"x"`
	Y         int32  `yaml:"y"`
	Z         int32  `yaml:"z"`
	Direction uint8  `yaml:"direction"`
	Type      string `yaml:"type"`
	Sequence  uint8  `yaml:"sequence"`
	MazeMask  uint8  `yaml:"maze_mask"`
}

type yamlBanner struct {
	Type     string `yaml:"type"`
	X        int32  `yaml:"x"`
	Y        int32  `yaml:"y"`
	Z        int32  `yaml:"z"`
	Position uint8  `yaml:"position"`
	Ride     *int   `yaml:"ride"`
	Text     string `yaml:"text"`
}

type yamlStaff struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadScenarioFromFile reads a scenario YAML file and builds its World.
//
// Precondition: path names a readable scenario YAML file; catalog is non-nil.
// Postcondition: Returns a populated World or a non-nil error.
func LoadScenarioFromFile(path string, catalog *Catalog) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	return LoadScenarioFromBytes(data, catalog)
}

// LoadScenarioFromBytes parses a scenario from YAML bytes and builds its World.
//
// Postcondition: Returns a populated World whose ParkValue is computed, or
// an error on malformed YAML or references to unknown catalog entries.
func LoadScenarioFromBytes(data []byte, catalog *Catalog) (*World, error) {
	var file yamlScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	ys := file.Scenario
	if ys.MapSize <= 0 || ys.MapSize > MaxMapSize {
		return nil, fmt.Errorf("scenario %q: map_size must be 1-%d, got %d", ys.Name, MaxMapSize, ys.MapSize)
	}

	w := NewWorld(ys.MapSize, catalog)
	w.Finances.Cash = money.Money(ys.Cash)
	w.Sandbox = ys.Sandbox

	for _, r := range ys.OwnedLand {
		for y := r.Y0; y <= r.Y1; y++ {
			for x := r.X0; x <= r.X1; x++ {
				w.Map.SetOwned(TileCoordsXY{X: x, Y: y}, true)
			}
		}
	}
	w.Map.ForEachTile(func(t TileCoordsXY) bool {
		w.Map.Insert(t, &TileElement{Type: ElementSurface})
		return true
	})

	for _, yr := range ys.Rides {
		if err := loadRide(w, yr); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", ys.Name, err)
		}
	}
	for i, yb := range ys.Banners {
		if err := loadBanner(w, yb); err != nil {
			return nil, fmt.Errorf("scenario %q: banner %d: %w", ys.Name, i, err)
		}
	}
	for i := 0; i < ys.Guests; i++ {
		w.AddGuest(NewGuest(fmt.Sprintf("Guest %d", i+1)))
	}
	for _, st := range ys.Staff {
		t, err := ParseStaffType(st.Type)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", ys.Name, err)
		}
		w.HireStaff(st.Name, t)
	}

	w.ParkValue = w.CalculateParkValue()
	return w, nil
}

func loadRide(w *World, yr yamlRide) error {
	if _, ok := w.Catalog.RideType(yr.Type); !ok {
		return fmt.Errorf("ride %d: unknown ride type %q", yr.ID, yr.Type)
	}
	status, err := ParseRideStatus(yr.Status)
	if err != nil {
		return fmt.Errorf("ride %d: %w", yr.ID, err)
	}
	ride := &Ride{
		ID:          RideID(yr.ID),
		Type:        yr.Type,
		Name:        yr.Name,
		Status:      status,
		Reliability: RideInitialReliability,
	}
	if yr.EverOpened {
		ride.Lifecycle |= LifecycleEverBeenOpened
	}
	if err := w.Rides.Add(ride); err != nil {
		return err
	}

	for _, yt := range yr.Track {
		tt, err := ParseTrackType(yt.Type)
		if err != nil {
			return fmt.Errorf("ride %d: %w", yr.ID, err)
		}
		tile := TileCoordsXY{X: yt.X, Y: yt.Y}
		if !w.Map.TileValid(tile) {
			return fmt.Errorf("ride %d: track tile %s off map", yr.ID, tile)
		}
		w.Map.Insert(tile, &TileElement{
			Type:      ElementTrack,
			BaseZ:     yt.Z,
			Direction: Direction(yt.Direction % NumDirections),
			RideIndex: ride.ID,
			TrackType: tt,
			Sequence:  yt.Sequence,
			MazeMask:  yt.MazeMask,
		})
		if ride.OverallView == nil {
			view := tile.ToCoords()
			ride.OverallView = &view
		}
	}
	return nil
}

func loadBanner(w *World, yb yamlBanner) error {
	if _, ok := w.Catalog.Banner(yb.Type); !ok {
		return fmt.Errorf("unknown banner type %q", yb.Type)
	}
	tile := TileCoordsXY{X: yb.X, Y: yb.Y}
	if !w.Map.TileValid(tile) {
		return fmt.Errorf("tile %s off map", tile)
	}
	b := &Banner{Type: yb.Type, RideIndex: RideIDNull, Text: yb.Text}
	if yb.Ride != nil {
		b.RideIndex = RideID(*yb.Ride)
		b.Flags |= BannerFlagLinkedToRide
	}
	idx, err := w.Banners.Create(b)
	if err != nil {
		return err
	}
	w.Map.Insert(tile, &TileElement{
		Type:        ElementBanner,
		BaseZ:       yb.Z,
		BannerIndex: idx,
		Position:    Direction(yb.Position % NumDirections),
	})
	return nil
}
