package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/palette"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/spatial"
)

var (
	colorGridLine = color.RGBA{0, 0, 0, 40}
	colorCursor   = color.RGBA{255, 255, 255, 200}
	colorValid    = color.RGBA{80, 230, 80, 140}
	colorInvalid  = color.RGBA{230, 60, 60, 140}
)

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)
	s := g.session
	bounds := s.Terrain.Bounds()

	for c := range bounds.Cells() {
		layer, flags, ok := s.Terrain.Resolve(c)
		if !ok {
			continue
		}
		g.fillCell(screen, c, palette.Terrain(s.Terrain, layer, flags))
		if style := s.Highlights.At(c); style != spatial.StyleNone {
			g.fillCell(screen, c, palette.Highlight(style))
		}
		if g.camera.Zoom >= 1 {
			g.strokeArea(screen, grid.NewArea(c, 1, 1), 1, colorGridLine)
		}
	}

	for b := range s.Buildings.All() {
		fp := b.Footprint()
		clr := palette.Variant(b.Template.Variant)
		for c := range fp.Area.Cells() {
			g.fillCell(screen, c, clr)
		}
		g.strokeArea(screen, fp.Area, 2, palette.Background)
	}

	goals, reached := s.Goals()
	for i, c := range goals {
		x, y := g.camera.WorldToScreen(c.Position(s.Level.TileSize))
		half := float32(s.Level.TileSize*g.camera.Zoom) / 2
		clr := palette.Goal
		if reached[i] {
			clr.A = 120
		}
		vector.DrawFilledCircle(screen, x+half, y+half, half*0.6, clr, true)
	}

	if ghost := g.ghosts.Current; ghost != nil && !ghost.Discarded {
		g.drawGhost(screen, ghost)
	}

	if s.Placement.State() == placement.Idle {
		g.strokeArea(screen, grid.NewArea(s.Placement.Hovered(), 1, 1), 2, colorCursor)
	}

	ebitenutil.DebugPrintAt(screen, g.status(), 8, 8)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) drawGhost(screen *ebiten.Image, ghost *placement.GhostPreview) {
	clr := colorInvalid
	if ghost.Valid {
		clr = colorValid
	}
	area := ghost.Area(g.session.Level.TileSize)
	for c := range area.Cells() {
		g.fillCell(screen, c, clr)
	}
	g.strokeArea(screen, area, 2, colorCursor)
}

func (g *Game) status() string {
	s := g.session
	econ := s.Placement.Economy()
	text := fmt.Sprintf("%s\navailable %d (collected %d, spent %d)  %s  tile %v",
		g.message, econ.Available(), econ.Collected, econ.Spent, s.Placement.State(), s.Placement.Hovered())
	for i, t := range g.catalog.Templates {
		if i >= len(templateKeys) {
			break
		}
		text += fmt.Sprintf("\n[%d] %s  cost %d", i+1, t.Name, t.ResourceCost)
	}
	return text
}

func (g *Game) fillCell(screen *ebiten.Image, c grid.Cell, clr color.Color) {
	size := g.session.Level.TileSize
	x, y := g.camera.WorldToScreen(c.Position(size))
	side := float32(size * g.camera.Zoom)
	vector.DrawFilledRect(screen, x, y, side, side, clr, false)
}

func (g *Game) strokeArea(screen *ebiten.Image, area grid.Area, width float32, clr color.Color) {
	size := g.session.Level.TileSize
	x, y := g.camera.WorldToScreen(area.Origin.Position(size))
	w := float32(float64(area.Width) * size * g.camera.Zoom)
	h := float32(float64(area.Height) * size * g.camera.Zoom)
	vector.StrokeRect(screen, x, y, w, h, width, clr, false)
}
