// Package ebiten is a graphical frontend for a campaign built on Ebiten. The
// mouse drives the placement pointer and buttons; number keys select
// templates.
package ebiten

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
)

// Overlay is drawn on top of the game and sees the frame before and after the
// session update, for example a Dear ImGui backend.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

type options struct {
	logger   *slog.Logger
	overlay  Overlay
	capture  func() (mouse, keyboard bool)
	onAttach []func(*session.Session)
}

// Option configures a Game.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOverlay draws o over the map.
func WithOverlay(o Overlay) Option {
	return func(opts *options) { opts.overlay = o }
}

// WithInputCapture reports whether another layer consumes the mouse or the
// keyboard this tick.
func WithInputCapture(fn func() (mouse, keyboard bool)) Option {
	return func(o *options) { o.capture = fn }
}

// OnAttach calls fn for every session the game switches to.
func OnAttach(fn func(*session.Session)) Option {
	return func(o *options) { o.onAttach = append(o.onAttach, fn) }
}

// Game implements ebiten.Game for a campaign.
type Game struct {
	campaign *session.Campaign
	catalog  *catalog.Catalog
	logger   *slog.Logger
	overlay  Overlay
	capture  func() (bool, bool)
	onAttach []func(*session.Session)

	session *session.Session
	queue   placement.Queue
	ghosts  placement.Ghosts
	camera  Camera
	keys    []ebiten.Key
	message string

	screenW, screenH int
	centred          bool
}

// New creates a game and loads the first level of campaign.
func New(campaign *session.Campaign, cat *catalog.Catalog, opts ...Option) (*Game, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Game{
		campaign: campaign,
		catalog:  cat,
		logger:   o.logger,
		overlay:  o.overlay,
		capture:  o.capture,
		onAttach: o.onAttach,
		camera:   NewCamera(),
	}

	s, err := campaign.Load(0, g.SessionOptions()...)
	if err != nil {
		return nil, err
	}
	g.attach(s)
	return g, nil
}

// SessionOptions connects a session to this game's input and previews.
func (g *Game) SessionOptions() []session.Option {
	return []session.Option{
		session.WithInput(&g.queue),
		session.WithPreviews(&g.ghosts),
	}
}

func (g *Game) attach(s *session.Session) {
	g.session = s
	g.ghosts.Current = nil
	g.message = s.Level.Name
	g.centred = false
	s.Bus.GoalReached.Subscribe(func(grid.Cell) {
		if s.Won() {
			g.message = "level complete, press N to continue"
		}
	})
	for _, fn := range g.onAttach {
		fn(s)
	}
	g.logger.Info("level loaded", "index", g.campaign.Index(), "name", s.Level.Name)
}

// Push queues placement triggers for the next tick.
func (g *Game) Push(triggers ...placement.Trigger) {
	g.queue.Push(triggers...)
}

// Session returns the running session.
func (g *Game) Session() *session.Session {
	return g.session
}

// Camera returns the camera.
func (g *Game) Camera() *Camera {
	return &g.camera
}

// Message returns the status line text.
func (g *Game) Message() string {
	return g.message
}

// Next switches to the following level when there is one.
func (g *Game) Next() error {
	if !g.campaign.HasNext() {
		g.message = "campaign complete"
		return nil
	}
	s, err := g.campaign.Next(g.SessionOptions()...)
	if err != nil {
		return err
	}
	g.attach(s)
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.BeginFrame()
		defer g.overlay.EndFrame()
	}

	in := readSnapshot(g.keys)
	g.keys = in.Keys
	if g.capture != nil {
		in.CaptureMouse, in.CaptureKeyboard = g.capture()
	}

	switch g.Apply(in) {
	case ActionQuit:
		return ebiten.Termination
	case ActionNextLevel:
		if err := g.Next(); err != nil {
			return err
		}
	}

	g.session.Tick(1 / float64(ebiten.TPS()))
	return nil
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	g.screenW, g.screenH = outsideWidth, outsideHeight
	if !g.centred {
		g.centre()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) centre() {
	bounds := g.session.Terrain.Bounds()
	cx, cy := bounds.Center()
	size := g.session.Level.TileSize
	g.camera.CenterOn(cx*size, cy*size, g.screenW, g.screenH)
	g.centred = true
}
