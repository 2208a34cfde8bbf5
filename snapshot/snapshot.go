// Package snapshot renders the state of a session to an image without a window.
package snapshot

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/palette"
	"github.com/plus3/buildgrid/session"
)

// Options controls the rendering.
type Options struct {
	// CellSize is the side of one cell in pixels. Zero means 16.
	CellSize int
	// Highlights draws the session's highlight layer on top of the terrain.
	Highlights bool
}

// Render draws the terrain bounds of s with buildings and goals.
func Render(s *session.Session, opts Options) image.Image {
	cell := float64(opts.CellSize)
	if cell <= 0 {
		cell = 16
	}

	bounds := s.Terrain.Bounds()
	if bounds.Empty() {
		bounds = grid.NewArea(grid.Cell{}, 1, 1)
	}
	dc := gg.NewContext(int(float64(bounds.Width)*cell), int(float64(bounds.Height)*cell))
	dc.SetColor(palette.Background)
	dc.Clear()

	toPixel := func(c grid.Cell) (float64, float64) {
		return float64(c.X-bounds.Origin.X) * cell, float64(c.Y-bounds.Origin.Y) * cell
	}

	for c := range bounds.Cells() {
		layer, flags, ok := s.Terrain.Resolve(c)
		if !ok {
			continue
		}
		x, y := toPixel(c)
		dc.SetColor(palette.Terrain(s.Terrain, layer, flags))
		dc.DrawRectangle(x, y, cell, cell)
		dc.Fill()
	}

	if opts.Highlights {
		for c, style := range s.Highlights.All() {
			x, y := toPixel(c)
			dc.SetColor(palette.Highlight(style))
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()
		}
	}

	for b := range s.Buildings.All() {
		fp := b.Footprint()
		x, y := toPixel(fp.Area.Origin)
		w, h := float64(fp.Area.Width)*cell, float64(fp.Area.Height)*cell
		dc.SetColor(palette.Variant(b.Template.Variant))
		dc.DrawRectangle(x+1, y+1, w-2, h-2)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x+1, y+1, w-2, h-2)
		dc.Stroke()
	}

	cells, reached := s.Goals()
	for i, c := range cells {
		x, y := toPixel(c)
		dc.SetColor(palette.Goal)
		dc.DrawCircle(x+cell/2, y+cell/2, cell/3)
		if reached[i] {
			dc.Fill()
			continue
		}
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	return dc.Image()
}

// WritePNG renders s and encodes it as PNG to w.
func WritePNG(w io.Writer, s *session.Session, opts Options) error {
	dc := gg.NewContextForImage(Render(s, opts))
	return dc.EncodePNG(w)
}

// SavePNG renders s to a PNG file.
func SavePNG(path string, s *session.Session, opts Options) error {
	return gg.SavePNG(path, Render(s, opts))
}
