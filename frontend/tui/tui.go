// Package tui is a terminal frontend for a session built on tcell. Every grid
// cell takes two columns and one row; the bottom rows show the economy and the
// template list.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
	"github.com/plus3/buildgrid/spatial"
	"github.com/plus3/buildgrid/terrain"
)

// Action is what the caller should do after an event.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextLevel
)

const statusRows = 2

var (
	styleTerrain  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWater    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleHigh     = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleResource = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen).Bold(true)
	styleBuilding = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
	styleGoal     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)

	highlightBackground = map[spatial.Style]tcell.Color{
		spatial.StyleBuildable: tcell.ColorDarkSlateGray,
		spatial.StyleExpanded:  tcell.ColorTeal,
		spatial.StyleResource:  tcell.ColorOlive,
	}
)

// Frontend draws one session at a time and turns terminal events into
// placement triggers.
type Frontend struct {
	screen  tcell.Screen
	catalog *catalog.Catalog
	logger  *slog.Logger

	queue   placement.Queue
	ghosts  placement.Ghosts
	session *session.Session
	cursor  grid.Cell
	buttons tcell.ButtonMask
	message string
	detach  func()
}

// New creates a frontend drawing on an initialised screen.
func New(screen tcell.Screen, cat *catalog.Catalog, logger *slog.Logger) *Frontend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Frontend{screen: screen, catalog: cat, logger: logger}
}

// SessionOptions connects a session to this frontend's input and previews.
func (f *Frontend) SessionOptions() []session.Option {
	return []session.Option{
		session.WithInput(&f.queue),
		session.WithPreviews(&f.ghosts),
	}
}

// Attach switches the frontend to s.
func (f *Frontend) Attach(s *session.Session) {
	if f.detach != nil {
		f.detach()
	}
	f.session = s
	f.ghosts.Current = nil
	f.message = s.Level.Name
	f.cursor = s.Terrain.Bounds().Origin
	if b, ok := first(s); ok {
		f.cursor = b
	}
	f.detach = s.Bus.GoalReached.Subscribe(func(grid.Cell) {
		if s.Won() {
			f.message = "level complete, press n to continue"
		}
	})
	f.syncPointer()
}

func first(s *session.Session) (grid.Cell, bool) {
	for b := range s.Buildings.All() {
		return b.Footprint().Anchor, true
	}
	return grid.Cell{}, false
}

// Cursor returns the cell under the keyboard or mouse cursor.
func (f *Frontend) Cursor() grid.Cell {
	return f.cursor
}

func (f *Frontend) syncPointer() {
	size := f.session.Level.TileSize
	x, y := f.cursor.Position(size)
	f.queue.Point(x+size/2, y+size/2)
}

func (f *Frontend) moveCursor(dx, dy int) {
	bounds := f.session.Terrain.Bounds()
	next := f.cursor.Add(grid.Cell{X: dx, Y: dy})
	if bounds.Contains(next) {
		f.cursor = next
		f.syncPointer()
	}
}

// HandleEvent applies a terminal event.
func (f *Frontend) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		f.handleMouse(ev)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return ActionNone
}

func (f *Frontend) handleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEscape:
		f.queue.Push(placement.Cancel)
	case tcell.KeyEnter:
		f.queue.Push(placement.Confirm)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		f.queue.Push(placement.Destroy)
	case tcell.KeyUp:
		f.moveCursor(0, -1)
	case tcell.KeyDown:
		f.moveCursor(0, 1)
	case tcell.KeyLeft:
		f.moveCursor(-1, 0)
	case tcell.KeyRight:
		f.moveCursor(1, 0)
	case tcell.KeyRune:
		return f.handleRune(ev.Rune())
	}
	return ActionNone
}

func (f *Frontend) handleRune(r rune) Action {
	switch {
	case r == 'q':
		return ActionQuit
	case r == 'n' && f.session.Won():
		return ActionNextLevel
	case r == ' ':
		f.queue.Push(placement.Confirm)
	case r == 'x':
		f.queue.Push(placement.Destroy)
	case r == 'h':
		f.moveCursor(-1, 0)
	case r == 'j':
		f.moveCursor(0, 1)
	case r == 'k':
		f.moveCursor(0, -1)
	case r == 'l':
		f.moveCursor(1, 0)
	case r >= '1' && r <= '9':
		if t := f.catalog.At(int(r - '1')); t != nil {
			f.queue.Push(placement.Select(t))
		}
	}
	return ActionNone
}

func (f *Frontend) handleMouse(ev *tcell.EventMouse) {
	sx, sy := ev.Position()
	bounds := f.session.Terrain.Bounds()
	cell := bounds.Origin.Add(grid.Cell{X: sx / 2, Y: sy})
	if bounds.Contains(cell) && cell != f.cursor {
		f.cursor = cell
		f.syncPointer()
	}

	pressed := ev.Buttons() &^ f.buttons
	f.buttons = ev.Buttons()
	if pressed&tcell.Button1 != 0 {
		f.queue.Push(placement.Confirm)
	}
	if pressed&tcell.Button2 != 0 {
		f.queue.Push(placement.Secondary)
	}
}

// Draw renders the session and shows the screen.
func (f *Frontend) Draw() {
	f.screen.Clear()
	s := f.session
	bounds := s.Terrain.Bounds()

	for c := range bounds.Cells() {
		r, style := f.terrainCell(c)
		if bg, ok := highlightBackground[s.Highlights.At(c)]; ok {
			style = style.Background(bg)
		}
		f.setCell(bounds, c, r, style)
	}

	for b := range s.Buildings.All() {
		r := []rune(b.Template.Name)[0]
		for c := range b.Footprint().Area.Cells() {
			f.setCell(bounds, c, r, styleBuilding)
		}
	}

	goals, reached := s.Goals()
	for i, c := range goals {
		style := styleGoal
		if reached[i] {
			style = style.Reverse(true)
		}
		f.setCell(bounds, c, '$', style)
	}

	if g := f.ghosts.Current; g != nil && !g.Discarded {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		if g.Valid {
			style = tcell.StyleDefault.Foreground(tcell.ColorLime)
		}
		for c := range g.Area(s.Level.TileSize).Cells() {
			f.setCell(bounds, c, '#', style)
		}
	}

	if bounds.Contains(f.cursor) {
		x, y := 2*(f.cursor.X-bounds.Origin.X), f.cursor.Y-bounds.Origin.Y
		r, _, style, _ := f.screen.GetContent(x, y)
		f.screen.SetContent(x, y, r, nil, style.Reverse(true))
	}

	f.drawStatus(bounds.Height)
	f.screen.Show()
}

func (f *Frontend) terrainCell(c grid.Cell) (rune, tcell.Style) {
	layer, flags, ok := f.session.Terrain.Resolve(c)
	switch {
	case !ok:
		return ' ', tcell.StyleDefault
	case flags.Has(terrain.Resource):
		return '♣', styleResource
	case !flags.Has(terrain.Buildable):
		return '~', styleWater
	case f.session.Terrain.ElevationGroupOf(layer) != nil:
		return '^', styleHigh
	}
	return '.', styleTerrain
}

func (f *Frontend) setCell(bounds grid.Area, c grid.Cell, r rune, style tcell.Style) {
	x, y := 2*(c.X-bounds.Origin.X), c.Y-bounds.Origin.Y
	f.screen.SetContent(x, y, r, nil, style)
	f.screen.SetContent(x+1, y, ' ', nil, style)
}

func (f *Frontend) drawStatus(row int) {
	s := f.session
	status := fmt.Sprintf("%s | available %d | %s | cursor %v",
		f.message, s.Placement.Available(), s.Placement.State(), f.cursor)
	f.drawText(0, row, status)

	var sb strings.Builder
	for i, t := range f.catalog.Templates {
		if i >= 9 {
			break
		}
		fmt.Fprintf(&sb, "[%d] %s (%d)  ", i+1, t.Name, t.ResourceCost)
	}
	sb.WriteString("| enter place  esc cancel  x destroy  q quit")
	f.drawText(0, row+1, sb.String())
}

func (f *Frontend) drawText(x, y int, text string) {
	for _, r := range text {
		f.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
}

// Run drives the campaign until the player quits or ctx is cancelled. The
// first level must already be loaded and attached.
func (f *Frontend) Run(ctx context.Context, campaign *session.Campaign, interval time.Duration) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := f.screen.PollEvent()
			events <- ev
			if ev == nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if ev == nil {
				return nil
			}
			switch f.HandleEvent(ev) {
			case ActionQuit:
				return nil
			case ActionNextLevel:
				if !campaign.HasNext() {
					f.message = "campaign complete"
					continue
				}
				s, err := campaign.Next(f.SessionOptions()...)
				if err != nil {
					return err
				}
				f.logger.Info("level loaded", "index", campaign.Index(), "name", s.Level.Name)
				f.Attach(s)
			}
		case now := <-ticker.C:
			f.session.Tick(now.Sub(last).Seconds())
			last = now
			f.Draw()
		}
	}
}

// MinSize returns the screen size needed to draw the current session.
func (f *Frontend) MinSize() (int, int) {
	bounds := f.session.Terrain.Bounds()
	return 2 * bounds.Width, bounds.Height + statusRows
}
