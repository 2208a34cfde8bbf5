// Package spatial owns the grid state of a session: which cells are buildable,
// which are occupied, which lie inside some building's influence radius and
// which resource cells have been claimed.
//
// Placement updates the state incrementally. Destruction rebuilds it from the
// remaining buildings, because influence radii overlap and a cell kept
// buildable by two buildings must survive the removal of either.
package spatial

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/event"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/terrain"
)

// ErrInvariant is returned by CheckInvariants when the grid state is inconsistent.
var ErrInvariant = errors.New("spatial: invariant violated")

// Terrain classifies cells. *terrain.Stack implements it.
type Terrain interface {
	Resolve(c grid.Cell) (*terrain.Layer, terrain.Flags, bool)
	IsBuildable(c grid.Cell) bool
	IsResource(c grid.Cell) bool
	ElevationGroupOf(layer *terrain.Layer) *terrain.Group
}

// Footprints lists the footprints of every live building. *building.Registry
// implements it.
type Footprints interface {
	Footprints() iter.Seq[*building.Footprint]
}

// Index holds the four cell sets. It is not safe for concurrent use.
type Index struct {
	terrain   Terrain
	buildings Footprints
	bus       *event.Bus
	sink      HighlightSink
	logger    *slog.Logger
	strict    bool

	buildable *grid.CellSet
	occupied  *grid.CellSet
	influence *grid.CellSet
	claimed   *grid.CellSet
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) { idx.logger = logger }
}

// WithHighlightSink sets the receiver of highlight requests.
func WithHighlightSink(sink HighlightSink) Option {
	return func(idx *Index) { idx.sink = sink }
}

// WithStrictInvariants makes every update panic if it leaves the index in an
// inconsistent state.
func WithStrictInvariants() Option {
	return func(idx *Index) { idx.strict = true }
}

// New creates an empty index. Signals are published on bus.
func New(t Terrain, buildings Footprints, bus *event.Bus, opts ...Option) *Index {
	if t == nil || buildings == nil || bus == nil {
		panic("spatial: nil collaborator")
	}

	idx := &Index{
		terrain:   t,
		buildings: buildings,
		bus:       bus,
		sink:      discardSink{},
		logger:    slog.New(slog.DiscardHandler),
		buildable: grid.NewCellSet(256),
		occupied:  grid.NewCellSet(64),
		influence: grid.NewCellSet(256),
		claimed:   grid.NewCellSet(32),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Attach subscribes the index to building lifecycle events on its bus. The
// returned function detaches it again.
func (idx *Index) Attach() (detach func()) {
	placed := idx.bus.BuildingPlaced.Subscribe(func(b *building.Building) {
		idx.OnBuildingPlaced(b.Footprint())
	})
	destroyed := idx.bus.BuildingDestroyed.Subscribe(func(b *building.Building) {
		idx.OnBuildingDestroyed(b.Footprint())
	})
	return func() {
		placed()
		destroyed()
	}
}

// OnBuildingPlaced adds fp to the grid state.
func (idx *Index) OnBuildingPlaced(fp *building.Footprint) {
	before := idx.claimed.Len()
	idx.accumulate(fp)
	idx.verify()

	idx.logger.Debug("building placed",
		"area", fp.Area,
		"buildable", idx.buildable.Len(),
		"occupied", idx.occupied.Len())

	if after := idx.claimed.Len(); after != before {
		idx.bus.ResourceTilesUpdated.Publish(after)
	}
	idx.bus.GridStateChanged.Publish(struct{}{})
}

// OnBuildingDestroyed rebuilds the grid state from every live building except fp.
func (idx *Index) OnBuildingDestroyed(fp *building.Footprint) {
	idx.buildable.Clear()
	idx.occupied.Clear()
	idx.influence.Clear()
	idx.claimed.Clear()

	replayed := 0
	for other := range idx.buildings.Footprints() {
		if other == fp {
			continue
		}
		idx.accumulate(other)
		replayed++
	}
	idx.verify()

	idx.logger.Debug("grid rebuilt",
		"removed", fp.Area,
		"buildings", replayed,
		"buildable", idx.buildable.Len(),
		"claimed", idx.claimed.Len())

	idx.bus.ResourceTilesUpdated.Publish(idx.claimed.Len())
	idx.bus.GridStateChanged.Publish(struct{}{})
}

// accumulate unions the contribution of fp into all four sets.
func (idx *Index) accumulate(fp *building.Footprint) {
	idx.occupied.Union(fp.Cells())

	for _, c := range grid.InRadius(fp.Area, fp.BuildingRadius, nil) {
		idx.influence.Add(c)
		if idx.terrain.IsBuildable(c) {
			idx.buildable.Add(c)
		}
	}
	idx.buildable.Subtract(idx.occupied)

	idx.claimed.AddAll(grid.InRadius(fp.Area, fp.ResourceCollectionRadius, idx.terrain.IsResource))
}

func (idx *Index) verify() {
	if !idx.strict {
		return
	}
	if err := idx.CheckInvariants(); err != nil {
		panic(err)
	}
}

// IsTileBuildable reports whether c is in the buildable set.
func (idx *Index) IsTileBuildable(c grid.Cell) bool {
	return idx.buildable.Has(c)
}

// IsTileOccupied reports whether some building covers c.
func (idx *Index) IsTileOccupied(c grid.Cell) bool {
	return idx.occupied.Has(c)
}

// IsTileInAnyInfluenceRadius reports whether c lies inside some building's
// influence radius, whatever its terrain.
func (idx *Index) IsTileInAnyInfluenceRadius(c grid.Cell) bool {
	return idx.influence.Has(c)
}

// ClaimedResourceCount returns the number of claimed resource cells.
func (idx *Index) ClaimedResourceCount() int {
	return idx.claimed.Len()
}

// IsFootprintBuildable reports whether a building may cover area: every cell
// must be buildable terrain, in the buildable set and on the same elevation
// group as the first cell.
func (idx *Index) IsFootprintBuildable(area grid.Area) bool {
	first, ok := area.First()
	if !ok {
		return false
	}
	firstLayer, _, ok := idx.terrain.Resolve(first)
	if !ok {
		return false
	}
	group := idx.terrain.ElevationGroupOf(firstLayer)

	for c := range area.Cells() {
		if !idx.buildable.Has(c) {
			return false
		}
		layer, flags, ok := idx.terrain.Resolve(c)
		if !ok || !flags.Has(terrain.Buildable) {
			return false
		}
		if idx.terrain.ElevationGroupOf(layer) != group {
			return false
		}
	}
	return true
}

// ValidTilesInRadius returns the buildable-terrain cells inside the circle grown
// around area by radius.
func (idx *Index) ValidTilesInRadius(area grid.Area, radius int) []grid.Cell {
	return grid.InRadius(area, radius, idx.terrain.IsBuildable)
}

// ResourceTilesInRadius returns the resource cells inside the circle grown
// around area by radius.
func (idx *Index) ResourceTilesInRadius(area grid.Area, radius int) []grid.Cell {
	return grid.InRadius(area, radius, idx.terrain.IsResource)
}

// CheckInvariants returns an error if a buildable cell is also occupied.
func (idx *Index) CheckInvariants() error {
	if !idx.buildable.Intersects(idx.occupied) {
		return nil
	}
	var overlap []grid.Cell
	for c := range idx.buildable.All() {
		if idx.occupied.Has(c) {
			overlap = append(overlap, c)
		}
	}
	slices.SortFunc(overlap, grid.CompareCells)
	return errors.Wrapf(ErrInvariant, "%d cells both buildable and occupied, first %v", len(overlap), overlap[0])
}

// Snapshot is a sorted copy of the grid state.
type Snapshot struct {
	Buildable []grid.Cell
	Occupied  []grid.Cell
	Influence []grid.Cell
	Claimed   []grid.Cell
}

// Snapshot copies the four sets.
func (idx *Index) Snapshot() Snapshot {
	return Snapshot{
		Buildable: idx.buildable.Sorted(),
		Occupied:  idx.occupied.Sorted(),
		Influence: idx.influence.Sorted(),
		Claimed:   idx.claimed.Sorted(),
	}
}

// Sizes returns the cardinality of the four sets in snapshot order.
func (idx *Index) Sizes() (buildable, occupied, influence, claimed int) {
	return idx.buildable.Len(), idx.occupied.Len(), idx.influence.Len(), idx.claimed.Len()
}
