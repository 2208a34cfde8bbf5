package building

import (
	"fmt"

	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
)

// Footprint is the grid space a building covers together with the metadata the
// spatial index and the placement controller read from it. It is immutable.
type Footprint struct {
	Anchor                   grid.Cell
	Area                     grid.Area
	BuildingRadius           int
	ResourceCollectionRadius int
	ResourceCost             int
	Deletable                bool

	cells *grid.CellSet
}

// FootprintOf derives the footprint template would cover with its origin at anchor.
func FootprintOf(t *catalog.Template, anchor grid.Cell) *Footprint {
	area := grid.NewArea(anchor, t.Width, t.Height)
	cells := grid.NewCellSet(area.Len())
	cells.AddSeq(area.Cells())

	return &Footprint{
		Anchor:                   anchor,
		Area:                     area,
		BuildingRadius:           t.BuildingRadius,
		ResourceCollectionRadius: t.ResourceCollectionRadius,
		ResourceCost:             t.ResourceCost,
		Deletable:                t.Deletable(),
		cells:                    cells,
	}
}

// Contains reports whether c is one of the covered cells.
func (f *Footprint) Contains(c grid.Cell) bool {
	return f.cells.Has(c)
}

// Cells returns the covered cells. Callers must not modify the set.
func (f *Footprint) Cells() *grid.CellSet {
	return f.cells
}

func (f *Footprint) String() string {
	return fmt.Sprintf("footprint %v r=%d rc=%d", f.Area, f.BuildingRadius, f.ResourceCollectionRadius)
}
