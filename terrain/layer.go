package terrain

import (
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/plus3/buildgrid/grid"
)

// Source yields the tile data a single layer holds at a cell.
type Source interface {
	TileData(c grid.Cell) (Flags, bool)
}

// Bounded is implemented by sources that know the rectangle they cover.
type Bounded interface {
	Bounds() grid.Area
}

// Group is a structural parent of layers. Groups marked Elevation split the
// terrain into levels: a footprint may only span layers of one elevation group.
type Group struct {
	Name      string
	Elevation bool
	Parent    *Group
}

// Layer is one tile layer of the stack.
type Layer struct {
	Name   string
	Parent *Group
	Source Source
}

// TileLayer is a sparse in-memory Source.
type TileLayer struct {
	tiles  *intmap.Map[grid.Key, Flags]
	min    grid.Cell
	max    grid.Cell
	filled bool
}

// NewTileLayer creates an empty layer.
func NewTileLayer() *TileLayer {
	return &TileLayer{tiles: intmap.New[grid.Key, Flags](256)}
}

// Set stores flags at c. A tile with no flags still counts as present.
func (l *TileLayer) Set(c grid.Cell, f Flags) {
	l.tiles.Put(c.Key(), f)

	if !l.filled {
		l.min, l.max, l.filled = c, c, true
		return
	}
	l.min = grid.Cell{X: min(l.min.X, c.X), Y: min(l.min.Y, c.Y)}
	l.max = grid.Cell{X: max(l.max.X, c.X), Y: max(l.max.Y, c.Y)}
}

// TileData implements Source.
func (l *TileLayer) TileData(c grid.Cell) (Flags, bool) {
	return l.tiles.Get(c.Key())
}

// Len returns the number of present tiles.
func (l *TileLayer) Len() int {
	return l.tiles.Len()
}

// Bounds returns the smallest area covering every present tile.
func (l *TileLayer) Bounds() grid.Area {
	if !l.filled {
		return grid.Area{}
	}
	return grid.NewArea(l.min, l.max.X-l.min.X+1, l.max.Y-l.min.Y+1)
}

// Tiles iterates present tiles in no particular order.
func (l *TileLayer) Tiles() iter.Seq2[grid.Cell, Flags] {
	return func(yield func(grid.Cell, Flags) bool) {
		for k, f := range l.tiles.All() {
			if !yield(k.Cell(), f) {
				return
			}
		}
	}
}
