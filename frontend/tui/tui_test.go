package tui_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/frontend/tui"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (tcell.SimulationScreen, *tui.Frontend, *session.Session) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 20)

	cfg := config.Defaults()
	cfg.Catalog = filepath.Join("..", "..", "levels", "buildings.yaml")
	cfg.Levels = []string{filepath.Join("..", "..", "levels", "level1.yaml")}

	cat, err := catalog.Load(cfg.Catalog)
	require.NoError(t, err)

	f := tui.New(screen, cat, nil)
	campaign := session.NewCampaign(cfg, cat)
	s, err := campaign.Load(0, f.SessionOptions()...)
	require.NoError(t, err)
	f.Attach(s)
	return screen, f, s
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		sb.WriteString(string(cells[y*width+x].Runes))
	}
	return sb.String()
}

func TestDraw(t *testing.T) {
	screen, f, _ := setup(t)
	f.Draw()

	w, h := f.MinSize()
	assert.Equal(t, 40, w)
	assert.Equal(t, 14, h)

	assert.True(t, strings.HasPrefix(row(screen, 0), "~ ~ ~"))
	// the base covers columns 4..9 of rows 5..7
	assert.Equal(t, "B B B ", row(screen, 5)[4:10])
	assert.Contains(t, row(screen, 12), "available 6")
	assert.Contains(t, row(screen, 13), "[2] Tower (2)")
}

func TestKeyboardPlacement(t *testing.T) {
	_, f, s := setup(t)
	assert.Equal(t, grid.Cell{X: 2, Y: 5}, f.Cursor(), "cursor starts on the first building")

	for range 4 {
		f.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	}
	f.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	assert.Equal(t, grid.Cell{X: 6, Y: 6}, f.Cursor())

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	f.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	s.Tick(1.0 / 60)

	assert.Equal(t, 2, s.Buildings.Len())
	assert.Equal(t, 4, s.Placement.Available())

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	s.Tick(1.0 / 60)
	assert.Equal(t, 1, s.Buildings.Len())
}

func TestMousePlacement(t *testing.T) {
	_, f, s := setup(t)

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, grid.Cell{X: 6, Y: 6}, f.Cursor())

	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.Button1, tcell.ModNone))
	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.Button1, tcell.ModNone))
	s.Tick(1.0 / 60)
	assert.Equal(t, 2, s.Buildings.Len(), "a held button confirms once")

	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.ButtonNone, tcell.ModNone))
	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	s.Tick(1.0 / 60)
	require.Equal(t, placement.Placing, s.Placement.State())

	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.Button2, tcell.ModNone))
	s.Tick(1.0 / 60)
	assert.Equal(t, placement.Idle, s.Placement.State(), "right click cancels while placing")
	assert.Equal(t, 2, s.Buildings.Len())

	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.ButtonNone, tcell.ModNone))
	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	f.HandleEvent(tcell.NewEventMouse(12, 6, tcell.Button2, tcell.ModNone))
	s.Tick(1.0 / 60)
	assert.Equal(t, placement.Idle, s.Placement.State(), "the click applies to the selection queued before it")
	assert.Equal(t, 2, s.Buildings.Len())
}

func TestQuit(t *testing.T) {
	_, f, _ := setup(t)
	assert.Equal(t, tui.ActionQuit, f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.Equal(t, tui.ActionQuit, f.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.Equal(t, tui.ActionNone, f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)), "level not won")
}
