// Package session assembles one playable level: terrain, building registry,
// event bus, spatial index, placement controller and frame scheduler. A
// Session owns every collaborator it creates; nothing is shared between
// sessions.
package session

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/event"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/level"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/spatial"
	"github.com/plus3/buildgrid/terrain"
	"github.com/plus3/buildgrid/tick"
)

type options struct {
	logger   *slog.Logger
	input    placement.Input
	previews placement.PreviewFactory
	sink     spatial.HighlightSink
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger shared by the session's components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInput sets the input the placement controller polls every frame.
func WithInput(in placement.Input) Option {
	return func(o *options) { o.input = in }
}

// WithPreviews sets the placement preview factory.
func WithPreviews(f placement.PreviewFactory) Option {
	return func(o *options) { o.previews = f }
}

// WithHighlightSink sends highlight requests to sink instead of the session's
// own HighlightLayer.
func WithHighlightSink(sink spatial.HighlightSink) Option {
	return func(o *options) { o.sink = sink }
}

type goal struct {
	cell    grid.Cell
	reached bool
}

// Session is one running level.
type Session struct {
	ID         uuid.UUID
	Level      *level.Level
	Catalog    *catalog.Catalog
	Terrain    *terrain.Stack
	Buildings  *building.Registry
	Bus        *event.Bus
	Grid       *spatial.Index
	Placement  *placement.Controller
	Scheduler  *tick.Scheduler
	Highlights *spatial.HighlightLayer

	logger      *slog.Logger
	pending     *grid.CellSet
	goals       []goal
	unsubscribe []func()
}

// New builds a session for lvl and activates the level's initial buildings.
func New(cfg config.Config, lvl *level.Level, cat *catalog.Catalog, opts ...Option) (*Session, error) {
	if lvl == nil || cat == nil {
		return nil, errors.New("session: level and catalog are required")
	}

	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		ID:         uuid.New(),
		Level:      lvl,
		Catalog:    cat,
		Terrain:    lvl.Terrain,
		Buildings:  building.NewRegistry(),
		Bus:        event.NewBus(),
		Scheduler:  tick.NewScheduler(),
		Highlights: spatial.NewHighlightLayer(),
		pending:    grid.NewCellSet(0),
	}
	s.logger = o.logger.With("session", s.ID.String(), "level", lvl.Name)

	var sink spatial.HighlightSink = s.Highlights
	if o.sink != nil {
		sink = o.sink
	}
	gridOpts := []spatial.Option{
		spatial.WithLogger(s.logger),
		spatial.WithHighlightSink(sink),
	}
	if cfg.StrictInvariants {
		gridOpts = append(gridOpts, spatial.WithStrictInvariants())
	}
	s.Grid = spatial.New(s.Terrain, s.Buildings, s.Bus, gridOpts...)

	controllerOpts := []placement.Option{
		placement.WithLogger(s.logger),
		placement.WithTileSize(lvl.TileSize),
		placement.WithStartingResources(lvl.StartingResources),
	}
	if o.input != nil {
		controllerOpts = append(controllerOpts, placement.WithInput(o.input))
	}
	if o.previews != nil {
		controllerOpts = append(controllerOpts, placement.WithPreviews(o.previews))
	}
	s.Placement = placement.NewController(s.Grid, s.Buildings, s, s.Bus, controllerOpts...)

	for _, c := range lvl.Goals {
		s.goals = append(s.goals, goal{cell: c})
	}

	s.unsubscribe = append(s.unsubscribe,
		s.Grid.Attach(),
		s.Placement.Attach(),
		s.Bus.GridStateChanged.Subscribe(func(struct{}) { s.checkGoals() }),
	)
	s.Scheduler.Register(s.Placement, "placement")

	initial := make([]*building.Building, 0, len(lvl.Buildings))
	for _, p := range lvl.Buildings {
		x, y := p.Cell.Position(lvl.TileSize)
		initial = append(initial, building.New(p.Template, x, y))
	}
	for _, b := range initial {
		s.activate(b)
	}

	s.logger.Info("session started",
		"buildings", s.Buildings.Len(),
		"goals", len(s.goals),
		"available", s.Placement.Available())
	return s, nil
}

// Spawn creates a building with its origin at the given cell. Activation is
// deferred to the end of the current frame; until then its cells are reserved.
func (s *Session) Spawn(t *catalog.Template, origin grid.Cell) {
	x, y := origin.Position(s.Level.TileSize)
	b := building.New(t, x, y)
	s.pending.AddSeq(grid.NewArea(origin, t.Width, t.Height).Cells())
	s.Scheduler.Commands().Defer(func() { s.activate(b) })
}

// Reserved reports whether area overlaps a spawned building that has not been
// activated yet.
func (s *Session) Reserved(area grid.Area) bool {
	if s.pending.Len() == 0 {
		return false
	}
	for c := range area.Cells() {
		if s.pending.Has(c) {
			return true
		}
	}
	return false
}

// Destroy removes b from the grid and the registry.
func (s *Session) Destroy(b *building.Building) {
	s.Bus.BuildingDestroyed.Publish(b)
	if _, ok := s.Buildings.Remove(b.ID); !ok {
		s.logger.Warn("destroyed building was not registered", "building", b)
	}
}

func (s *Session) activate(b *building.Building) {
	fp := b.Activate(s.Level.TileSize)
	for c := range fp.Area.Cells() {
		s.pending.Del(c)
	}
	s.Buildings.Add(b)
	s.logger.Debug("building activated", "building", b, "id", b.ID, "instance", b.Instance)
	s.Bus.BuildingPlaced.Publish(b)
}

func (s *Session) checkGoals() {
	for i := range s.goals {
		g := &s.goals[i]
		if g.reached || !s.Grid.IsTileInAnyInfluenceRadius(g.cell) {
			continue
		}
		g.reached = true
		s.logger.Info("goal reached", "cell", g.cell)
		s.Bus.GoalReached.Publish(g.cell)
	}
}

// Won reports whether the level has goals and all of them were reached.
func (s *Session) Won() bool {
	if len(s.goals) == 0 {
		return false
	}
	for _, g := range s.goals {
		if !g.reached {
			return false
		}
	}
	return true
}

// Goals returns the goal cells and whether each was reached.
func (s *Session) Goals() ([]grid.Cell, []bool) {
	cells := make([]grid.Cell, len(s.goals))
	reached := make([]bool, len(s.goals))
	for i, g := range s.goals {
		cells[i], reached[i] = g.cell, g.reached
	}
	return cells, reached
}

// Tick runs one frame.
func (s *Session) Tick(dt float64) {
	s.Scheduler.Once(dt)
}

// Close detaches the session's subscriptions.
func (s *Session) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}
