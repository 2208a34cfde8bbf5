package building_test

import (
	"slices"
	"testing"

	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tower = &catalog.Template{
		ID: "tower", Name: "Tower", Variant: catalog.VariantTower,
		Width: 1, Height: 1, BuildingRadius: 5, ResourceCost: 2,
		Capabilities: catalog.CapDeletable,
	}
	village = &catalog.Template{
		ID: "village", Name: "Village", Variant: catalog.VariantVillage,
		Width: 2, Height: 2, BuildingRadius: 3, ResourceCollectionRadius: 4, ResourceCost: 4,
	}
)

func TestID(t *testing.T) {
	id := building.NewID(7, 42)
	assert.Equal(t, uint32(7), id.Generation())
	assert.Equal(t, uint32(42), id.Slot())
	assert.Equal(t, building.ID(7<<32|42), id)
}

func TestActivate(t *testing.T) {
	b := building.New(village, 130, -1)
	assert.False(t, b.Active())
	assert.Nil(t, b.Footprint())
	assert.False(t, b.IsCoordinateInFootprint(grid.Cell{X: 2, Y: -1}))

	fp := b.Activate(64)
	require.NotNil(t, fp)
	assert.Equal(t, grid.Cell{X: 2, Y: -1}, fp.Anchor)
	assert.Equal(t, grid.NewArea(grid.Cell{X: 2, Y: -1}, 2, 2), fp.Area)
	assert.Equal(t, 4, fp.Cells().Len())
	assert.Equal(t, 3, fp.BuildingRadius)
	assert.Equal(t, 4, fp.ResourceCollectionRadius)
	assert.False(t, fp.Deletable)

	assert.Same(t, fp, b.Activate(16), "activation runs once")
	assert.True(t, b.IsCoordinateInFootprint(grid.Cell{X: 3, Y: 0}))
	assert.False(t, b.IsCoordinateInFootprint(grid.Cell{X: 4, Y: 0}))
	assert.Equal(t, "village@(2,-1)", b.String())
}

func TestNewAssignsInstance(t *testing.T) {
	a := building.New(tower, 0, 0)
	b := building.New(tower, 0, 0)
	assert.NotEqual(t, a.Instance, b.Instance)
	assert.Panics(t, func() { building.New(nil, 0, 0) })
}

func place(r *building.Registry, t *catalog.Template, x, y int) *building.Building {
	b := building.New(t, float64(x)*64, float64(y)*64)
	b.Activate(64)
	r.Add(b)
	return b
}

func TestRegistry(t *testing.T) {
	r := building.NewRegistry()
	a := place(r, tower, 0, 0)
	b := place(r, village, 3, 3)
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	at, ok := r.At(grid.Cell{X: 4, Y: 4})
	require.True(t, ok)
	assert.Same(t, b, at)
	_, ok = r.At(grid.Cell{X: 1, Y: 1})
	assert.False(t, ok)

	assert.Equal(t, []*building.Building{a, b}, slices.Collect(r.All()))
	assert.Equal(t, []*building.Footprint{a.Footprint(), b.Footprint()}, slices.Collect(r.Footprints()))

	removed, ok := r.Remove(a.ID)
	require.True(t, ok)
	assert.Same(t, a, removed)
	assert.Equal(t, 1, r.Len())
	_, ok = r.At(grid.Cell{X: 0, Y: 0})
	assert.False(t, ok)

	_, ok = r.Remove(a.ID)
	assert.False(t, ok, "double remove")
}

func TestRegistryStaleID(t *testing.T) {
	r := building.NewRegistry()
	a := place(r, tower, 0, 0)
	stale := a.ID
	r.Remove(stale)

	c := place(r, tower, 1, 0)
	assert.Equal(t, stale.Slot(), c.ID.Slot(), "slot reused")
	assert.NotEqual(t, stale, c.ID)

	_, ok := r.Get(stale)
	assert.False(t, ok)
	got, ok := r.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestRegistryOverlapReindex(t *testing.T) {
	r := building.NewRegistry()
	under := place(r, village, 0, 0)
	over := place(r, village, 1, 1)

	at, _ := r.At(grid.Cell{X: 1, Y: 1})
	assert.Same(t, over, at)

	r.Remove(over.ID)
	at, ok := r.At(grid.Cell{X: 1, Y: 1})
	require.True(t, ok, "shared cell falls back to the remaining building")
	assert.Same(t, under, at)
}

func TestRegistryRejectsInactive(t *testing.T) {
	r := building.NewRegistry()
	assert.Panics(t, func() { r.Add(building.New(tower, 0, 0)) })
}

func TestRegistryManySlots(t *testing.T) {
	r := building.NewRegistry()
	var ids []building.ID
	for i := range 150 {
		ids = append(ids, place(r, tower, i, 0).ID)
	}
	for i, id := range ids {
		if i%2 == 0 {
			r.Remove(id)
		}
	}
	assert.Equal(t, 75, r.Len())
	for b := range r.All() {
		assert.Equal(t, 1, b.Footprint().Anchor.X%2)
	}
}
