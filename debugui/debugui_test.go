package debugui_test

import (
	"path/filepath"
	"testing"

	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/debugui"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
	"github.com/plus3/buildgrid/tick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noImgui() debugui.InputState {
	return debugui.InputState{WantCaptureMouse: true}
}

func TestSystemDefersItems(t *testing.T) {
	sys := debugui.NewSystem(debugui.WithInputSource(noImgui))
	var order []string
	first := sys.Add(func() { order = append(order, "first") })
	sys.Add(func() { order = append(order, "second") })

	scheduler := tick.NewScheduler()
	scheduler.Register(tick.SystemFunc(func(*tick.Frame) {
		order = append(order, "system")
	}), "")
	scheduler.Register(sys, "debugui")
	scheduler.Once(0)

	assert.Equal(t, []string{"system", "first", "second"}, order)
	mouse, keyboard := sys.Capture()
	assert.True(t, mouse)
	assert.False(t, keyboard)

	sys.Remove(first)
	assert.Equal(t, 1, sys.Len())
}

func TestPerformanceStats(t *testing.T) {
	ps := debugui.NewPerformanceStats(4)
	assert.Zero(t, ps.Average())

	ps.Record(0.010)
	ps.Record(0.020)
	assert.InDelta(t, 15.0, ps.Average(), 1e-3)

	for range 4 {
		ps.Record(0.005)
	}
	assert.InDelta(t, 5.0, ps.Average(), 1e-3)
}

func TestPanelsAttach(t *testing.T) {
	cfg := config.Defaults()
	cfg.Catalog = filepath.Join("..", "levels", "buildings.yaml")
	cat, err := catalog.Load(cfg.Catalog)
	require.NoError(t, err)

	cfg.Levels = []string{filepath.Join("..", "levels", "level1.yaml")}

	var queue placement.Queue
	s, err := session.NewCampaign(cfg, cat, session.WithInput(&queue)).Load(0)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	x, y := grid.Cell{X: 6, Y: 6}.Position(s.Level.TileSize)
	queue.Point(x+1, y+1)
	queue.Push(placement.Select(cat.At(1)), placement.Confirm)
	s.Tick(0.016)

	// the windows need a Dear ImGui context, so the session is not ticked
	// once they are attached
	panels := debugui.NewPanels(func(tr placement.Trigger) { queue.Push(tr) }, debugui.WithInputSource(noImgui))
	panels.Attach(s)
	assert.Equal(t, 2, panels.System.Len())

	var names []string
	for _, sys := range s.Scheduler.Stats().Systems {
		names = append(names, sys.Name)
	}
	assert.Equal(t, []string{"placement", "frametime", "debugui"}, names)

	rows := debugui.BuildingRows(s)
	require.Len(t, rows, 2)
	assert.Equal(t, "base", rows[0].Template)
	assert.Equal(t, "(2,5)", rows[0].Anchor)
	assert.Equal(t, "3x3", rows[0].Size)
	assert.False(t, rows[0].Deletable)
	assert.Equal(t, "tower", rows[1].Template)
	assert.True(t, rows[1].Deletable)
}
