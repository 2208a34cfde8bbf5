package snapshot_test

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/level"
	"github.com/plus3/buildgrid/session"
	"github.com/plus3/buildgrid/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	cat, err := catalog.Load(filepath.Join("..", "levels", "buildings.yaml"))
	require.NoError(t, err)
	lvl, err := level.Load(filepath.Join("..", "levels", "level1.yaml"), cat)
	require.NoError(t, err)
	s, err := session.New(config.Defaults(), lvl, cat)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestRenderSize(t *testing.T) {
	s := newSession(t)
	img := snapshot.Render(s, snapshot.Options{CellSize: 8})
	assert.Equal(t, 20*8, img.Bounds().Dx())
	assert.Equal(t, 12*8, img.Bounds().Dy())

	// the base covers (2..4, 5..7); sample the centre of (3,6)
	r, g, b, _ := img.At(3*8+4, 6*8+4).RGBA()
	assert.Greater(t, r, g)
	assert.Greater(t, r, b)
}

func TestWritePNG(t *testing.T) {
	s := newSession(t)
	s.Grid.HighlightBuildable()

	var buf bytes.Buffer
	require.NoError(t, snapshot.WritePNG(&buf, s, snapshot.Options{Highlights: true}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 20*16, img.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	s := newSession(t)
	path := filepath.Join(t.TempDir(), "meadow.png")
	require.NoError(t, snapshot.SavePNG(path, s, snapshot.Options{}))
	assert.FileExists(t, path)
}
