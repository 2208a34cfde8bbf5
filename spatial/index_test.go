package spatial_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/event"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/spatial"
	"github.com/plus3/buildgrid/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tileSize = 64

func c(x, y int) grid.Cell {
	return grid.Cell{X: x, Y: y}
}

func template(id string, w, h, radius, resourceRadius int) *catalog.Template {
	return &catalog.Template{
		ID: id, Name: id, Width: w, Height: h,
		BuildingRadius: radius, ResourceCollectionRadius: resourceRadius,
		ResourceCost: 1, Capabilities: catalog.CapDeletable,
	}
}

type fixture struct {
	stack    *terrain.Stack
	registry *building.Registry
	bus      *event.Bus
	index    *spatial.Index
}

// meadow is a 20x20 buildable field with a row of resource tiles at y=15.
func meadow(t *testing.T) *terrain.Stack {
	t.Helper()
	ground := terrain.NewTileLayer()
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			ground.Set(c(x, y), terrain.Buildable)
		}
	}
	for x := 0; x < 20; x++ {
		ground.Set(c(x, 15), terrain.Resource)
	}
	stack, err := terrain.NewStack(&terrain.Layer{Name: "ground", Source: ground})
	require.NoError(t, err)
	return stack
}

func newFixture(t *testing.T, stack *terrain.Stack) *fixture {
	t.Helper()
	registry := building.NewRegistry()
	bus := event.NewBus()
	return &fixture{
		stack:    stack,
		registry: registry,
		bus:      bus,
		index:    spatial.New(stack, registry, bus, spatial.WithStrictInvariants()),
	}
}

func (f *fixture) place(tmpl *catalog.Template, at grid.Cell) *building.Building {
	b := building.New(tmpl, float64(at.X)*tileSize, float64(at.Y)*tileSize)
	b.Activate(tileSize)
	f.registry.Add(b)
	f.index.OnBuildingPlaced(b.Footprint())
	return b
}

func (f *fixture) destroy(b *building.Building) {
	f.index.OnBuildingDestroyed(b.Footprint())
	f.registry.Remove(b.ID)
}

func TestSingleTileScenario(t *testing.T) {
	ground := terrain.NewTileLayer()
	for _, cell := range []grid.Cell{c(0, 0), c(1, 0), c(0, 1), c(2, 0), c(1, 1)} {
		ground.Set(cell, terrain.Buildable)
	}
	stack, err := terrain.NewStack(&terrain.Layer{Name: "ground", Source: ground})
	require.NoError(t, err)

	f := newFixture(t, stack)
	f.place(template("hut", 1, 1, 1, 0), c(0, 0))

	snap := f.index.Snapshot()
	assert.Equal(t, []grid.Cell{c(0, 0)}, snap.Occupied)
	assert.Equal(t, []grid.Cell{c(0, 1), c(1, 0)}, snap.Buildable)
	assert.Equal(t, []grid.Cell{c(-1, 0), c(0, -1), c(0, 0), c(0, 1), c(1, 0)}, snap.Influence)
	assert.Empty(t, snap.Claimed)
	assert.False(t, f.index.IsTileBuildable(c(0, 0)))
	assert.True(t, f.index.IsTileInAnyInfluenceRadius(c(-1, 0)), "influence ignores terrain")
	assert.False(t, f.index.IsTileBuildable(c(-1, 0)))
}

func TestPlacedFootprintIsOccupied(t *testing.T) {
	f := newFixture(t, meadow(t))
	tmpls := []*catalog.Template{
		template("a", 1, 1, 2, 0),
		template("b", 2, 2, 3, 1),
		template("c", 3, 1, 1, 2),
	}
	origins := []grid.Cell{c(2, 2), c(8, 3), c(12, 12)}

	for i, tmpl := range tmpls {
		b := f.place(tmpl, origins[i])
		for cell := range b.Footprint().Area.Cells() {
			assert.True(t, f.index.IsTileOccupied(cell))
			assert.False(t, f.index.IsTileBuildable(cell))
		}
		assert.NoError(t, f.index.CheckInvariants())
	}
}

func TestOverlappingInfluenceSurvivesDestroy(t *testing.T) {
	f := newFixture(t, meadow(t))
	tower := template("tower", 1, 1, 2, 0)

	west := f.place(tower, c(3, 5))
	f.place(tower, c(7, 5))
	require.True(t, f.index.IsTileBuildable(c(5, 5)))
	require.True(t, f.index.IsTileBuildable(c(2, 5)))

	f.destroy(west)

	assert.True(t, f.index.IsTileBuildable(c(5, 5)), "still inside the east tower's radius")
	assert.False(t, f.index.IsTileBuildable(c(2, 5)), "only the west tower reached it")
	assert.False(t, f.index.IsTileOccupied(c(3, 5)))
	assert.False(t, f.index.IsTileBuildable(c(3, 5)))
	assert.True(t, f.index.IsTileOccupied(c(7, 5)))
	assert.NoError(t, f.index.CheckInvariants())
}

func TestRebuildIsOrderIndependent(t *testing.T) {
	tmpls := []*catalog.Template{
		template("tower", 1, 1, 3, 0),
		template("village", 2, 2, 2, 3),
		template("hall", 3, 2, 4, 1),
	}
	type placement struct {
		tmpl   *catalog.Template
		origin grid.Cell
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 10; round++ {
		var placements []placement
		for i := 0; i < 6; i++ {
			placements = append(placements, placement{
				tmpl:   tmpls[rng.IntN(len(tmpls))],
				origin: c(rng.IntN(17), rng.IntN(17)),
			})
		}
		victim := rng.IntN(len(placements))

		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			stack := meadow(t)

			rebuilt := newFixture(t, stack)
			var victimBuilding *building.Building
			for i, p := range placements {
				b := rebuilt.place(p.tmpl, p.origin)
				if i == victim {
					victimBuilding = b
				}
			}
			rebuilt.destroy(victimBuilding)
			want := rebuilt.index.Snapshot()

			order := rng.Perm(len(placements))
			replayed := newFixture(t, stack)
			for _, i := range order {
				if i == victim {
					continue
				}
				replayed.place(placements[i].tmpl, placements[i].origin)
			}

			assert.Equal(t, want, replayed.index.Snapshot())
		})
	}
}

func TestFootprintOverlappingOccupiedIsNotBuildable(t *testing.T) {
	f := newFixture(t, meadow(t))
	f.place(template("tower", 1, 1, 6, 0), c(10, 10))

	require.True(t, f.index.IsFootprintBuildable(grid.NewArea(c(11, 10), 2, 2)))
	for _, origin := range []grid.Cell{c(9, 9), c(10, 10), c(9, 10), c(10, 9)} {
		area := grid.NewArea(origin, 2, 2)
		assert.False(t, f.index.IsFootprintBuildable(area), "%v", area)
	}
}

func TestFootprintBuildableRules(t *testing.T) {
	ground := terrain.NewTileLayer()
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			ground.Set(c(x, y), terrain.Buildable)
		}
	}
	ground.Set(c(4, 4), 0)

	plateau := terrain.NewTileLayer()
	for y := 0; y < 12; y++ {
		plateau.Set(c(8, y), terrain.Buildable)
		plateau.Set(c(9, y), terrain.Buildable)
	}

	b := terrain.NewBuilder()
	_, err := b.Group("highlands", "", true)
	require.NoError(t, err)
	_, err = b.Layer("plateau", "highlands", plateau)
	require.NoError(t, err)
	_, err = b.Layer("ground", "", ground)
	require.NoError(t, err)
	stack, err := b.Build()
	require.NoError(t, err)

	f := newFixture(t, stack)
	f.place(template("keep", 1, 1, 8, 0), c(6, 6))

	tests := []struct {
		name string
		area grid.Area
		want bool
	}{
		{"open ground", grid.NewArea(c(2, 6), 2, 2), true},
		{"plateau only", grid.NewArea(c(8, 6), 2, 2), true},
		{"spans elevation groups", grid.NewArea(c(7, 6), 2, 1), false},
		{"unbuildable terrain tile", grid.NewArea(c(4, 4), 1, 2), false},
		{"outside influence", grid.NewArea(c(0, 0), 1, 1), false},
		{"off the map", grid.NewArea(c(-3, 6), 2, 1), false},
		{"empty area", grid.NewArea(c(2, 6), 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.index.IsFootprintBuildable(tt.area))
		})
	}
}

func TestSignals(t *testing.T) {
	f := newFixture(t, meadow(t))

	var counts []int
	gridChanges := 0
	f.bus.ResourceTilesUpdated.Subscribe(func(n int) { counts = append(counts, n) })
	f.bus.GridStateChanged.Subscribe(func(struct{}) { gridChanges++ })

	f.place(template("tower", 1, 1, 2, 0), c(2, 2))
	assert.Empty(t, counts, "no resource tiles claimed")
	assert.Equal(t, 1, gridChanges)

	// resource row at y=15; a 1x1 collector at (5,14) with radius 1 reaches (5,15)
	collector := f.place(template("mill", 1, 1, 1, 1), c(5, 14))
	assert.Equal(t, []int{1}, counts)
	assert.Equal(t, 2, gridChanges)

	f.place(template("mill", 1, 1, 1, 1), c(5, 14))
	assert.Equal(t, []int{1}, counts, "count unchanged")
	assert.Equal(t, 3, gridChanges)

	f.place(template("mill", 1, 1, 1, 2), c(10, 13))
	require.Len(t, counts, 2)
	assert.Equal(t, f.index.ClaimedResourceCount(), counts[1])

	f.destroy(collector)
	assert.Len(t, counts, 3, "rebuild always reports the count")
	assert.Equal(t, 5, gridChanges, "rebuild signals once")
}

func TestHighlights(t *testing.T) {
	f := newFixture(t, meadow(t))
	layer := spatial.NewHighlightLayer()
	f.index.SetHighlightSink(layer)

	f.place(template("tower", 1, 1, 1, 0), c(5, 5))
	f.index.HighlightBuildable()
	assert.Equal(t, 4, layer.Count(spatial.StyleBuildable))

	f.index.ClearHighlights()
	assert.Equal(t, 0, layer.Len())

	area := grid.NewArea(c(6, 5), 1, 1)
	f.index.HighlightExpandedBuildable(area, 1)
	for cell, style := range layer.All() {
		assert.Equal(t, spatial.StyleExpanded, style)
		assert.False(t, f.index.IsTileBuildable(cell))
		assert.False(t, f.index.IsTileOccupied(cell))
	}
	assert.Equal(t, spatial.StyleExpanded, layer.At(c(7, 5)))
	assert.Equal(t, spatial.StyleNone, layer.At(c(6, 5)), "already buildable")
	assert.Equal(t, spatial.StyleNone, layer.At(c(5, 5)), "occupied")

	f.index.ClearHighlights()
	f.index.HighlightResourceTiles(grid.NewArea(c(3, 14), 2, 1), 2)
	assert.Positive(t, layer.Count(spatial.StyleResource))
	for cell := range layer.All() {
		assert.Equal(t, 15, cell.Y)
	}
}

func TestAttach(t *testing.T) {
	f := newFixture(t, meadow(t))
	detach := f.index.Attach()

	b := building.New(template("tower", 1, 1, 2, 0), 3*tileSize, 3*tileSize)
	b.Activate(tileSize)
	f.registry.Add(b)
	f.bus.BuildingPlaced.Publish(b)
	assert.True(t, f.index.IsTileOccupied(c(3, 3)))

	f.bus.BuildingDestroyed.Publish(b)
	f.registry.Remove(b.ID)
	assert.False(t, f.index.IsTileOccupied(c(3, 3)))

	detach()
	f.bus.BuildingPlaced.Publish(b)
	assert.False(t, f.index.IsTileOccupied(c(3, 3)))
}

func TestNewPanicsOnNilCollaborator(t *testing.T) {
	assert.Panics(t, func() { spatial.New(nil, building.NewRegistry(), event.NewBus()) })
}
