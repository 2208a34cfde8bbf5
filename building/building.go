// Package building holds placed building instances and the registry that owns
// their lifecycle.
//
// Buildings are constructed in two phases. New records the template and world
// anchor and does nothing else; Activate derives the footprint once the owning
// session is ready for the building to take part in grid queries.
package building

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
)

// Building is one placed instance of a template.
type Building struct {
	// ID is assigned by Registry.Add and is zero before that.
	ID       ID
	Instance uuid.UUID
	Template *catalog.Template
	X, Y     float64

	footprint *Footprint
}

// New creates an inactive building anchored at the world position (x, y).
func New(t *catalog.Template, x, y float64) *Building {
	if t == nil {
		panic("building: nil template")
	}
	return &Building{
		Instance: uuid.New(),
		Template: t,
		X:        x,
		Y:        y,
	}
}

// Activate computes the footprint from the anchor and template dimensions. It
// is idempotent: later calls return the cached footprint whatever tileSize is.
func (b *Building) Activate(tileSize float64) *Footprint {
	if b.footprint == nil {
		b.footprint = FootprintOf(b.Template, grid.FromPosition(b.X, b.Y, tileSize))
	}
	return b.footprint
}

// Active reports whether Activate has run.
func (b *Building) Active() bool {
	return b.footprint != nil
}

// Footprint returns the cached footprint, or nil before activation.
func (b *Building) Footprint() *Footprint {
	return b.footprint
}

// IsCoordinateInFootprint reports whether c is covered by the building. Inactive
// buildings cover nothing.
func (b *Building) IsCoordinateInFootprint(c grid.Cell) bool {
	return b.footprint != nil && b.footprint.Contains(c)
}

func (b *Building) String() string {
	if b.footprint == nil {
		return fmt.Sprintf("%s@(%.0f,%.0f)", b.Template.ID, b.X, b.Y)
	}
	return fmt.Sprintf("%s@%v", b.Template.ID, b.footprint.Anchor)
}
