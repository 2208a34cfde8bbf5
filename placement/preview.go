package placement

import (
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
)

// Preview is the uncommitted stand-in shown while a building is being placed.
type Preview interface {
	MoveTo(x, y float64)
	SetValid(valid bool)
	Discard()
}

// PreviewFactory creates a preview for a template.
type PreviewFactory interface {
	NewPreview(t *catalog.Template) Preview
}

// PreviewFactoryFunc adapts a function to PreviewFactory.
type PreviewFactoryFunc func(t *catalog.Template) Preview

// NewPreview calls f.
func (f PreviewFactoryFunc) NewPreview(t *catalog.Template) Preview {
	return f(t)
}

type nopPreview struct{}

func (nopPreview) MoveTo(float64, float64) {}
func (nopPreview) SetValid(bool)           {}
func (nopPreview) Discard()                {}

// GhostPreview records the preview state for frontends that draw it themselves.
type GhostPreview struct {
	Template  *catalog.Template
	X, Y      float64
	Valid     bool
	Discarded bool
}

// MoveTo implements Preview.
func (g *GhostPreview) MoveTo(x, y float64) {
	g.X, g.Y = x, y
}

// SetValid implements Preview.
func (g *GhostPreview) SetValid(valid bool) {
	g.Valid = valid
}

// Discard implements Preview.
func (g *GhostPreview) Discard() {
	g.Discarded = true
}

// Area returns the cells the ghost covers when snapped to a grid of tileSize.
func (g *GhostPreview) Area(tileSize float64) grid.Area {
	return grid.NewArea(grid.FromPosition(g.X, g.Y, tileSize), g.Template.Width, g.Template.Height)
}

// Ghosts is a PreviewFactory that keeps the live GhostPreview.
type Ghosts struct {
	Current *GhostPreview
}

// NewPreview implements PreviewFactory.
func (g *Ghosts) NewPreview(t *catalog.Template) Preview {
	g.Current = &GhostPreview{Template: t}
	return &ghostHandle{owner: g, ghost: g.Current}
}

type ghostHandle struct {
	owner *Ghosts
	ghost *GhostPreview
}

func (h *ghostHandle) MoveTo(x, y float64) { h.ghost.MoveTo(x, y) }
func (h *ghostHandle) SetValid(valid bool) { h.ghost.SetValid(valid) }

func (h *ghostHandle) Discard() {
	h.ghost.Discard()
	if h.owner.Current == h.ghost {
		h.owner.Current = nil
	}
}
