package grid

import (
	"fmt"
	"iter"
)

// Area is a rectangle of cells anchored at Origin.
type Area struct {
	Origin Cell
	Width  int
	Height int
}

// NewArea creates an area of width x height cells starting at origin.
func NewArea(origin Cell, width, height int) Area {
	return Area{Origin: origin, Width: width, Height: height}
}

// End returns the exclusive lower-right corner.
func (a Area) End() Cell {
	return Cell{X: a.Origin.X + a.Width, Y: a.Origin.Y + a.Height}
}

// Empty reports whether the area covers no cells.
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// Len returns the number of covered cells.
func (a Area) Len() int {
	if a.Empty() {
		return 0
	}
	return a.Width * a.Height
}

// Contains reports whether c lies inside the area.
func (a Area) Contains(c Cell) bool {
	end := a.End()
	return c.X >= a.Origin.X && c.X < end.X && c.Y >= a.Origin.Y && c.Y < end.Y
}

// MoveTo returns a copy of the area with its origin replaced.
func (a Area) MoveTo(origin Cell) Area {
	a.Origin = origin
	return a
}

// Center returns the geometric centre of the area in cell units.
func (a Area) Center() (float64, float64) {
	return float64(a.Origin.X) + float64(a.Width)/2, float64(a.Origin.Y) + float64(a.Height)/2
}

// Cells iterates the covered cells column by column.
func (a Area) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		end := a.End()
		for x := a.Origin.X; x < end.X; x++ {
			for y := a.Origin.Y; y < end.Y; y++ {
				if !yield(Cell{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// First returns the first cell Cells would yield.
func (a Area) First() (Cell, bool) {
	if a.Empty() {
		return Cell{}, false
	}
	return a.Origin, true
}

func (a Area) String() string {
	return fmt.Sprintf("%v+%dx%d", a.Origin, a.Width, a.Height)
}
