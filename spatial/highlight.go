package spatial

import (
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/plus3/buildgrid/grid"
)

// Style tells the renderer how to paint a highlighted cell.
type Style uint8

const (
	StyleNone Style = iota
	// StyleBuildable marks cells that are buildable now.
	StyleBuildable
	// StyleExpanded marks cells a pending placement would make buildable.
	StyleExpanded
	// StyleResource marks resource cells a pending placement would claim.
	StyleResource
)

func (s Style) String() string {
	switch s {
	case StyleBuildable:
		return "buildable"
	case StyleExpanded:
		return "expanded"
	case StyleResource:
		return "resource"
	}
	return "none"
}

// HighlightSink receives highlight requests from the index.
type HighlightSink interface {
	SetHighlight(c grid.Cell, style Style)
	ClearHighlights()
}

type discardSink struct{}

func (discardSink) SetHighlight(grid.Cell, Style) {}
func (discardSink) ClearHighlights()              {}

// SetHighlightSink replaces the receiver of highlight requests.
func (idx *Index) SetHighlightSink(sink HighlightSink) {
	if sink == nil {
		sink = discardSink{}
	}
	idx.sink = sink
}

// HighlightBuildable paints every buildable cell.
func (idx *Index) HighlightBuildable() {
	for c := range idx.buildable.All() {
		idx.sink.SetHighlight(c, StyleBuildable)
	}
}

// HighlightExpandedBuildable paints the cells placing a building on area with
// radius would add to the buildable set.
func (idx *Index) HighlightExpandedBuildable(area grid.Area, radius int) {
	for _, c := range idx.ValidTilesInRadius(area, radius) {
		if idx.buildable.Has(c) || idx.occupied.Has(c) {
			continue
		}
		idx.sink.SetHighlight(c, StyleExpanded)
	}
}

// HighlightResourceTiles paints the resource cells within radius of area.
func (idx *Index) HighlightResourceTiles(area grid.Area, radius int) {
	for _, c := range idx.ResourceTilesInRadius(area, radius) {
		idx.sink.SetHighlight(c, StyleResource)
	}
}

// ClearHighlights removes every highlight.
func (idx *Index) ClearHighlights() {
	idx.sink.ClearHighlights()
}

// HighlightLayer is an in-memory HighlightSink that frontends read back when
// drawing. A later highlight of the same cell replaces the earlier style.
type HighlightLayer struct {
	cells *intmap.Map[grid.Key, Style]
}

// NewHighlightLayer creates an empty layer.
func NewHighlightLayer() *HighlightLayer {
	return &HighlightLayer{cells: intmap.New[grid.Key, Style](256)}
}

// SetHighlight implements HighlightSink.
func (h *HighlightLayer) SetHighlight(c grid.Cell, style Style) {
	h.cells.Put(c.Key(), style)
}

// ClearHighlights implements HighlightSink.
func (h *HighlightLayer) ClearHighlights() {
	h.cells.Clear()
}

// At returns the style painted on c, or StyleNone.
func (h *HighlightLayer) At(c grid.Cell) Style {
	style, _ := h.cells.Get(c.Key())
	return style
}

// Len returns the number of highlighted cells.
func (h *HighlightLayer) Len() int {
	return h.cells.Len()
}

// All iterates the highlighted cells in no particular order.
func (h *HighlightLayer) All() iter.Seq2[grid.Cell, Style] {
	return func(yield func(grid.Cell, Style) bool) {
		for k, style := range h.cells.All() {
			if !yield(k.Cell(), style) {
				return
			}
		}
	}
}

// Count returns how many cells carry style.
func (h *HighlightLayer) Count(style Style) int {
	n := 0
	for _, s := range h.cells.All() {
		if s == style {
			n++
		}
	}
	return n
}
