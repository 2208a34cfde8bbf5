// Package placement drives the building placement interaction: a two-state
// machine that tracks the pointer, previews the selected template, checks the
// footprint and the resource budget, and commits or cancels the placement.
package placement

import (
	"log/slog"

	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/event"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/tick"
)

// State is the controller state.
type State uint8

const (
	Idle State = iota
	Placing
)

func (s State) String() string {
	if s == Placing {
		return "placing"
	}
	return "idle"
}

// Grid is the part of the spatial index the controller consults.
// *spatial.Index implements it.
type Grid interface {
	IsFootprintBuildable(area grid.Area) bool
	HighlightBuildable()
	HighlightExpandedBuildable(area grid.Area, radius int)
	HighlightResourceTiles(area grid.Area, radius int)
	ClearHighlights()
}

// Locator finds the building covering a cell. *building.Registry implements it.
type Locator interface {
	At(c grid.Cell) (*building.Building, bool)
}

// Spawner creates and removes buildings on behalf of the controller.
type Spawner interface {
	Spawn(t *catalog.Template, origin grid.Cell)
	Destroy(b *building.Building)
	// Reserved reports whether area overlaps a building that was spawned but
	// is not on the grid yet.
	Reserved(area grid.Area) bool
}

// Session is the pending placement. It exists only while Placing.
type Session struct {
	Template *catalog.Template
	Area     grid.Area
	Preview  Preview
}

// Controller is the placement state machine. It is not safe for concurrent use.
type Controller struct {
	grid      Grid
	buildings Locator
	spawner   Spawner
	bus       *event.Bus
	previews  PreviewFactory
	input     Input
	logger    *slog.Logger
	tileSize  float64

	state   State
	economy Economy
	session *Session
	hovered grid.Cell
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithPreviews sets the factory for placement previews.
func WithPreviews(f PreviewFactory) Option {
	return func(c *Controller) { c.previews = f }
}

// WithInput sets the input polled by Execute.
func WithInput(in Input) Option {
	return func(c *Controller) { c.input = in }
}

// WithTileSize sets the world size of one cell. The default is 64.
func WithTileSize(size float64) Option {
	return func(c *Controller) { c.tileSize = size }
}

// WithStartingResources sets the resources available before anything is collected.
func WithStartingResources(n int) Option {
	return func(c *Controller) { c.economy.Starting = n }
}

// NewController creates an Idle controller.
func NewController(g Grid, buildings Locator, spawner Spawner, bus *event.Bus, opts ...Option) *Controller {
	if g == nil || buildings == nil || spawner == nil || bus == nil {
		panic("placement: nil collaborator")
	}

	c := &Controller{
		grid:      g,
		buildings: buildings,
		spawner:   spawner,
		bus:       bus,
		previews:  PreviewFactoryFunc(func(*catalog.Template) Preview { return nopPreview{} }),
		logger:    slog.New(slog.DiscardHandler),
		tileSize:  64,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach subscribes the controller to resource count updates.
func (c *Controller) Attach() (detach func()) {
	return c.bus.ResourceTilesUpdated.Subscribe(c.SetCollected)
}

// SetCollected overwrites the collected resource count.
func (c *Controller) SetCollected(n int) {
	if c.economy.Collected == n {
		return
	}
	c.economy.Collected = n
	c.publishAvailable()
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Economy returns a copy of the resource ledger.
func (c *Controller) Economy() Economy {
	return c.economy
}

// Available returns the spendable resources.
func (c *Controller) Available() int {
	return c.economy.Available()
}

// Session returns the pending placement, or nil while Idle.
func (c *Controller) Session() *Session {
	return c.session
}

// Hovered returns the cell under the pointer as of the last update.
func (c *Controller) Hovered() grid.Cell {
	return c.hovered
}

// Execute implements tick.System: it applies the pointer position and then the
// drained triggers in arrival order.
func (c *Controller) Execute(*tick.Frame) {
	if c.input == nil {
		return
	}
	c.UpdatePointer(c.input.Pointer())
	for _, t := range c.input.Drain() {
		c.Handle(t)
	}
}

// UpdatePointer tracks the pointer at world position (x, y).
func (c *Controller) UpdatePointer(x, y float64) {
	cell := grid.FromPosition(x, y, c.tileSize)

	if c.session != nil {
		c.session.Preview.MoveTo(cell.Position(c.tileSize))
	}
	if cell == c.hovered {
		return
	}
	c.hovered = cell

	if c.session != nil {
		c.session.Area = c.session.Area.MoveTo(cell)
		c.refresh()
	}
}

// Handle applies a trigger and reports whether it changed anything. Triggers
// whose guard fails are ignored.
func (c *Controller) Handle(t Trigger) bool {
	switch t.Kind {
	case TriggerSelect:
		return c.selectTemplate(t.Template)
	case TriggerCancel:
		return c.cancel()
	case TriggerConfirm:
		return c.confirm()
	case TriggerDestroy:
		return c.destroy()
	case TriggerSecondary:
		if c.state == Placing {
			return c.cancel()
		}
		return c.destroy()
	}
	return false
}

func (c *Controller) selectTemplate(t *catalog.Template) bool {
	if t == nil {
		return false
	}
	if c.session != nil {
		c.teardown()
	}

	preview := c.previews.NewPreview(t)
	preview.MoveTo(c.hovered.Position(c.tileSize))
	c.session = &Session{
		Template: t,
		Area:     grid.NewArea(c.hovered, t.Width, t.Height),
		Preview:  preview,
	}
	c.setState(Placing)
	c.refresh()
	return true
}

func (c *Controller) cancel() bool {
	if c.state != Placing {
		return false
	}
	c.teardown()
	c.setState(Idle)
	return true
}

func (c *Controller) confirm() bool {
	if c.state != Placing {
		return false
	}

	t, area := c.session.Template, c.session.Area
	if !c.canPlace() {
		c.logger.Debug("placement rejected",
			"template", t.ID,
			"area", area,
			"available", c.Available(),
			"cost", t.ResourceCost)
		return false
	}

	c.economy.Spent += t.ResourceCost
	c.publishAvailable()
	c.spawner.Spawn(t, area.Origin)
	c.logger.Info("building placed", "template", t.ID, "origin", area.Origin, "available", c.Available())

	c.teardown()
	c.setState(Idle)
	return true
}

func (c *Controller) destroy() bool {
	if c.state != Idle {
		return false
	}

	b, ok := c.buildings.At(c.hovered)
	if !ok || b.Footprint() == nil || !b.Footprint().Deletable {
		return false
	}

	c.economy.Spent -= b.Footprint().ResourceCost
	c.publishAvailable()
	c.spawner.Destroy(b)
	c.logger.Info("building destroyed", "building", b, "instance", b.Instance, "available", c.Available())
	return true
}

// CanPlace reports whether confirming now would succeed.
func (c *Controller) CanPlace() bool {
	return c.session != nil && c.canPlace()
}

func (c *Controller) canPlace() bool {
	return !c.spawner.Reserved(c.session.Area) &&
		c.grid.IsFootprintBuildable(c.session.Area) &&
		c.economy.CanAfford(c.session.Template.ResourceCost)
}

// refresh redraws the highlights and recolours the preview for the pending placement.
func (c *Controller) refresh() {
	c.grid.ClearHighlights()
	c.grid.HighlightBuildable()

	if c.canPlace() {
		t := c.session.Template
		c.grid.HighlightExpandedBuildable(c.session.Area, t.BuildingRadius)
		c.grid.HighlightResourceTiles(c.session.Area, t.ResourceCollectionRadius)
		c.session.Preview.SetValid(true)
		return
	}
	c.session.Preview.SetValid(false)
}

func (c *Controller) teardown() {
	c.session.Preview.Discard()
	c.session = nil
	c.grid.ClearHighlights()
}

func (c *Controller) setState(s State) {
	c.logger.Debug("placement state", "from", c.state, "to", s)
	c.state = s
}

func (c *Controller) publishAvailable() {
	c.bus.AvailableResourcesChanged.Publish(c.Available())
}
