package ebiten_test

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	frontend "github.com/plus3/buildgrid/frontend/ebiten"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, opts ...frontend.Option) *frontend.Game {
	t.Helper()

	cfg := config.Defaults()
	cfg.Catalog = filepath.Join("..", "..", "levels", "buildings.yaml")
	cfg.Levels = []string{
		filepath.Join("..", "..", "levels", "level1.yaml"),
		filepath.Join("..", "..", "levels", "level2.yaml"),
	}

	cat, err := catalog.Load(cfg.Catalog)
	require.NoError(t, err)

	g, err := frontend.New(session.NewCampaign(cfg, cat), cat, opts...)
	require.NoError(t, err)
	t.Cleanup(g.Session().Close)
	return g
}

// centre of cell (x, y) at zoom 1 with the camera at the origin
func tile(x, y int) (int, int) {
	return x*64 + 32, y*64 + 32
}

func TestCamera(t *testing.T) {
	c := frontend.NewCamera()
	wx, wy := c.ScreenToWorld(100, 50)
	assert.Equal(t, 100.0, wx)
	assert.Equal(t, 50.0, wy)

	c.Pan(20, -10)
	sx, sy := c.WorldToScreen(100, 50)
	assert.Equal(t, float32(80), sx)
	assert.Equal(t, float32(60), sy)

	before, _ := c.ScreenToWorld(300, 200)
	c.ZoomAt(300, 200, 5)
	after, _ := c.ScreenToWorld(300, 200)
	assert.InDelta(t, 2.0, c.Zoom, 1e-9)
	assert.InDelta(t, before, after, 1e-9)

	c.ZoomAt(0, 0, 100)
	assert.Equal(t, 4.0, c.Zoom)
	c.ZoomAt(0, 0, -100)
	assert.Equal(t, 0.25, c.Zoom)
}

func TestCenterOn(t *testing.T) {
	c := frontend.NewCamera()
	c.CenterOn(640, 384, 1280, 720)
	wx, wy := c.ScreenToWorld(640, 360)
	assert.Equal(t, 640.0, wx)
	assert.Equal(t, 384.0, wy)
}

func TestPlaceAndDestroy(t *testing.T) {
	g := newGame(t)
	s := g.Session()

	x, y := tile(6, 6)
	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Keys: []ebiten.Key{ebiten.KeyDigit2}, Left: true})
	s.Tick(1.0 / 60)

	assert.Equal(t, 2, s.Buildings.Len())
	assert.Equal(t, 4, s.Placement.Available())
	assert.Equal(t, placement.Idle, s.Placement.State())

	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Right: true})
	s.Tick(1.0 / 60)
	assert.Equal(t, 1, s.Buildings.Len())
	assert.Equal(t, 6, s.Placement.Available())
}

func TestRightClickCancels(t *testing.T) {
	g := newGame(t)
	s := g.Session()

	x, y := tile(6, 6)
	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Keys: []ebiten.Key{ebiten.KeyDigit3}})
	s.Tick(1.0 / 60)
	require.Equal(t, placement.Placing, s.Placement.State())

	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Right: true})
	s.Tick(1.0 / 60)
	assert.Equal(t, placement.Idle, s.Placement.State())
	assert.Equal(t, 1, s.Buildings.Len())
}

func TestRightClickSeesQueuedKeys(t *testing.T) {
	g := newGame(t)
	s := g.Session()

	x, y := tile(6, 6)
	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Keys: []ebiten.Key{ebiten.KeyDigit2}, Left: true})
	s.Tick(1.0 / 60)
	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Keys: []ebiten.Key{ebiten.KeyDigit2}})
	s.Tick(1.0 / 60)
	require.Equal(t, placement.Placing, s.Placement.State())
	require.Equal(t, 2, s.Buildings.Len())

	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Keys: []ebiten.Key{ebiten.KeyEscape}, Right: true})
	s.Tick(1.0 / 60)
	assert.Equal(t, placement.Idle, s.Placement.State())
	assert.Equal(t, 1, s.Buildings.Len(), "escape runs first, so the click destroys")
	assert.Equal(t, 6, s.Placement.Available())

	g.Apply(frontend.Snapshot{CursorX: x, CursorY: y, Keys: []ebiten.Key{ebiten.KeyDigit2}, Right: true})
	s.Tick(1.0 / 60)
	assert.Equal(t, placement.Idle, s.Placement.State(), "the click cancels the new selection")
}

func TestCapturedInputIsIgnored(t *testing.T) {
	g := newGame(t)
	s := g.Session()

	x, y := tile(6, 6)
	action := g.Apply(frontend.Snapshot{
		CursorX: x, CursorY: y,
		Keys:            []ebiten.Key{ebiten.KeyDigit2, ebiten.KeyQ},
		Left:            true,
		CaptureMouse:    true,
		CaptureKeyboard: true,
	})
	s.Tick(1.0 / 60)

	assert.Equal(t, frontend.ActionNone, action)
	assert.Equal(t, placement.Idle, s.Placement.State())
	assert.Equal(t, 1, s.Buildings.Len())
}

func TestKeys(t *testing.T) {
	g := newGame(t)

	assert.Equal(t, frontend.ActionQuit, g.Apply(frontend.Snapshot{Keys: []ebiten.Key{ebiten.KeyQ}}))
	assert.Equal(t, frontend.ActionNone, g.Apply(frontend.Snapshot{Keys: []ebiten.Key{ebiten.KeyN}}),
		"next level needs the goal")

	g.Apply(frontend.Snapshot{PanX: 1, PanY: -1})
	assert.Equal(t, 8.0, g.Camera().X)
	assert.Equal(t, -8.0, g.Camera().Y)
}

func TestNext(t *testing.T) {
	var attached []string
	g := newGame(t, frontend.OnAttach(func(s *session.Session) {
		attached = append(attached, s.Level.Name)
	}))

	require.NoError(t, g.Next())
	t.Cleanup(g.Session().Close)
	assert.Equal(t, []string{"Meadow", "Highlands"}, attached)
	assert.Equal(t, "Highlands", g.Message())

	require.NoError(t, g.Next())
	assert.Equal(t, "campaign complete", g.Message())
}
