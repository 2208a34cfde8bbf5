// Package grid holds the tile-space primitives shared by the terrain, building and
// spatial packages: cells, rectangular areas, cell sets and the radius rule used to
// grow buildable land around a footprint.
package grid

import (
	"fmt"
	"math"
)

// Cell is a tile coordinate. Cells are comparable and usable as map keys.
type Cell struct {
	X, Y int
}

// Key is a Cell packed into a single integer so it can index an intmap.
// The X component occupies the upper 32 bits, Y the lower 32 bits.
type Key uint64

// Key packs the cell. Coordinates outside the int32 range alias.
func (c Cell) Key() Key {
	return Key(uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Y))))
}

// Cell unpacks the key.
func (k Key) Cell() Cell {
	return Cell{
		X: int(int32(uint32(k >> 32))),
		Y: int(int32(uint32(k & 0xFFFFFFFF))),
	}
}

// Add returns the component-wise sum of c and o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Position returns the world position of the cell's top-left corner.
func (c Cell) Position(tileSize float64) (float64, float64) {
	return float64(c.X) * tileSize, float64(c.Y) * tileSize
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// FromPosition converts a world position into the cell that contains it.
// Division floors, so negative positions map to negative cells.
func FromPosition(x, y, tileSize float64) Cell {
	return Cell{
		X: int(math.Floor(x / tileSize)),
		Y: int(math.Floor(y / tileSize)),
	}
}
