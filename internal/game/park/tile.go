package park

// ElementType identifies the kind of a TileElement.
type ElementType uint8

const (
	ElementSurface ElementType = iota
	ElementPath
	ElementTrack
	ElementEntrance
	ElementBanner
)

// String returns the element kind name.
func (t ElementType) String() string {
	switch t {
	case ElementSurface:
		return "surface"
	case ElementPath:
		return "path"
	case ElementTrack:
		return "track"
	case ElementEntrance:
		return "entrance"
	case ElementBanner:
		return "banner"
	default:
		return "unknown"
	}
}

// TileElement is one stacked element on a map tile. Fields beyond the common
// header are meaningful only for the kinds noted.
type TileElement struct {
	Type      ElementType
	BaseZ     int32
	Direction Direction
	Ghost     bool

	// Track and entrance elements.
	RideIndex RideID
	// Track elements.
	TrackType TrackType
	Sequence  uint8
	// MazeMask holds one bit per maze sub-cell segment; maze track only.
	MazeMask uint8

	// Banner elements.
	BannerIndex BannerIndex
	// Position is the tile edge the banner faces.
	Position Direction
}

// IsMaze reports whether e is a maze track element.
func (e *TileElement) IsMaze() bool {
	return e.Type == ElementTrack && e.TrackType == TrackMaze
}

// TileMap is a square grid of tiles, each holding an ordered element stack,
// together with per-tile land ownership.
//
// Invariant: len(tiles) == len(owned) == size*size.
type TileMap struct {
	size  int32
	tiles [][]*TileElement
	owned []bool
	count int
}

// NewTileMap creates an empty map of size x size tiles.
//
// Precondition: 0 < size <= MaxMapSize.
// Postcondition: Every tile is empty and unowned.
func NewTileMap(size int32) *TileMap {
	if size <= 0 || size > MaxMapSize {
		panic("park.NewTileMap: size out of range")
	}
	n := int(size) * int(size)
	return &TileMap{
		size:  size,
		tiles: make([][]*TileElement, n),
		owned: make([]bool, n),
	}
}

// Size returns the map edge length in tiles.
func (m *TileMap) Size() int32 { return m.size }

// ElementCount returns the number of elements on the whole map.
func (m *TileMap) ElementCount() int { return m.count }

// TileValid reports whether t lies on the map.
func (m *TileMap) TileValid(t TileCoordsXY) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < m.size && t.Y < m.size
}

// LocationValid reports whether the big-coordinate position c lies on the map.
func (m *TileMap) LocationValid(c CoordsXY) bool {
	if c.X < 0 || c.Y < 0 {
		return false
	}
	return m.TileValid(c.ToTile())
}

func (m *TileMap) index(t TileCoordsXY) int {
	return int(t.Y)*int(m.size) + int(t.X)
}

// ElementsAt returns a snapshot of the element stack at t. Mutating the
// returned slice does not affect the map; the elements themselves are shared.
//
// Postcondition: Returns nil for off-map tiles.
func (m *TileMap) ElementsAt(t TileCoordsXY) []*TileElement {
	if !m.TileValid(t) {
		return nil
	}
	src := m.tiles[m.index(t)]
	out := make([]*TileElement, len(src))
	copy(out, src)
	return out
}

// Insert appends e to the stack at t.
//
// Precondition: t is on the map; e is non-nil and not already placed.
func (m *TileMap) Insert(t TileCoordsXY, e *TileElement) {
	i := m.index(t)
	m.tiles[i] = append(m.tiles[i], e)
	m.count++
}

// Remove deletes e from the stack at t.
//
// Postcondition: Returns true iff e was present and has been removed.
func (m *TileMap) Remove(t TileCoordsXY, e *TileElement) bool {
	if !m.TileValid(t) {
		return false
	}
	i := m.index(t)
	stack := m.tiles[i]
	for j, el := range stack {
		if el == e {
			m.tiles[i] = append(stack[:j:j], stack[j+1:]...)
			m.count--
			return true
		}
	}
	return false
}

// Contains reports whether e is currently placed at t.
func (m *TileMap) Contains(t TileCoordsXY, e *TileElement) bool {
	if !m.TileValid(t) {
		return false
	}
	for _, el := range m.tiles[m.index(t)] {
		if el == e {
			return true
		}
	}
	return false
}

// ForEachTile visits every tile in row-major order (y outer, x inner). The
// visit stops early when fn returns false.
func (m *TileMap) ForEachTile(fn func(t TileCoordsXY) bool) {
	for y := int32(0); y < m.size; y++ {
		for x := int32(0); x < m.size; x++ {
			if !fn(TileCoordsXY{X: x, Y: y}) {
				return
			}
		}
	}
}

// ForEachElement visits every element in map order. The visit stops early
// when fn returns false. fn must not insert or remove elements.
func (m *TileMap) ForEachElement(fn func(t TileCoordsXY, e *TileElement) bool) {
	m.ForEachTile(func(t TileCoordsXY) bool {
		for _, e := range m.tiles[m.index(t)] {
			if !fn(t, e) {
				return false
			}
		}
		return true
	})
}

// Owned reports whether the park owns the land at t.
func (m *TileMap) Owned(t TileCoordsXY) bool {
	return m.TileValid(t) && m.owned[m.index(t)]
}

// SetOwned sets land ownership at t. Off-map tiles are ignored.
func (m *TileMap) SetOwned(t TileCoordsXY, owned bool) {
	if m.TileValid(t) {
		m.owned[m.index(t)] = owned
	}
}

// SurfaceHeight returns the base height of the surface element at t, or 0
// when the tile has none.
func (m *TileMap) SurfaceHeight(t TileCoordsXY) int32 {
	if !m.TileValid(t) {
		return 0
	}
	for _, e := range m.tiles[m.index(t)] {
		if e.Type == ElementSurface {
			return e.BaseZ
		}
	}
	return 0
}
