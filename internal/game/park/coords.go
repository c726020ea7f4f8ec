// Package park provides the authoritative park world: the tile map, ride,
// banner and entity tables, finances, and the mutation helpers actions use.
//
// The world is owned by the simulation loop. Nothing in this package is safe
// for concurrent use; callers serialize access through the tick loop.
package park

import "fmt"

const (
	// CoordsXYStep is the number of big-coordinate units per tile edge.
	CoordsXYStep = 32
	// CoordsXYHalfTile is half a tile edge in big-coordinate units.
	CoordsXYHalfTile = 16
	// CoordsZStep is the big-coordinate height of one land step.
	CoordsZStep = 8
	// MaxMapSize is the largest supported map edge in tiles.
	MaxMapSize = 256
)

// Direction is a tile-edge orientation in [0, 3].
type Direction uint8

// NumDirections is the number of tile-edge orientations.
const NumDirections = 4

// AllDirections lists every Direction in ascending order.
var AllDirections = [NumDirections]Direction{0, 1, 2, 3}

// CoordsXY is a horizontal position in big coordinates.
type CoordsXY struct {
	X, Y int32
}

// CoordsXYZ is a position in big coordinates.
type CoordsXYZ struct {
	X, Y, Z int32
}

// CoordsXYZD is a position plus an orientation.
type CoordsXYZD struct {
	X, Y, Z   int32
	Direction Direction
}

// TileCoordsXY addresses one tile of the map.
type TileCoordsXY struct {
	X, Y int32
}

// ToTile returns the tile containing c.
//
// Precondition: c.X and c.Y are non-negative.
func (c CoordsXY) ToTile() TileCoordsXY {
	return TileCoordsXY{X: c.X / CoordsXYStep, Y: c.Y / CoordsXYStep}
}

// ToTileStart snaps c to the north-west corner of its tile.
func (c CoordsXY) ToTileStart() CoordsXY {
	return c.ToTile().ToCoords()
}

// ToTileCentre returns the centre of the tile containing c.
func (c CoordsXY) ToTileCentre() CoordsXY {
	s := c.ToTileStart()
	return CoordsXY{X: s.X + CoordsXYHalfTile, Y: s.Y + CoordsXYHalfTile}
}

// ToCoords returns the north-west corner of t in big coordinates.
func (t TileCoordsXY) ToCoords() CoordsXY {
	return CoordsXY{X: t.X * CoordsXYStep, Y: t.Y * CoordsXYStep}
}

// String returns "(x, y)".
func (t TileCoordsXY) String() string {
	return fmt.Sprintf("(%d, %d)", t.X, t.Y)
}

// XY drops the height component.
func (c CoordsXYZ) XY() CoordsXY {
	return CoordsXY{X: c.X, Y: c.Y}
}

// XY drops the height and orientation components.
func (c CoordsXYZD) XY() CoordsXY {
	return CoordsXY{X: c.X, Y: c.Y}
}

// XYZ drops the orientation component.
func (c CoordsXYZD) XYZ() CoordsXYZ {
	return CoordsXYZ{X: c.X, Y: c.Y, Z: c.Z}
}

// Offset returns c shifted horizontally by d, keeping height and orientation.
func (c CoordsXYZD) Offset(d CoordsXY) CoordsXYZD {
	return CoordsXYZD{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z, Direction: c.Direction}
}

// String returns "(x, y, z, d)".
func (c CoordsXYZD) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.X, c.Y, c.Z, c.Direction)
}
