package session

import (
	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/level"
)

// ErrLevelIndex is returned when a level index is out of range.
var ErrLevelIndex = errors.New("session: level index out of range")

// Campaign plays the configured levels in order.
type Campaign struct {
	cfg     config.Config
	catalog *catalog.Catalog
	opts    []Option

	index   int
	current *Session
}

// NewCampaign creates a campaign over cfg.Levels. No level is loaded yet.
func NewCampaign(cfg config.Config, cat *catalog.Catalog, opts ...Option) *Campaign {
	return &Campaign{cfg: cfg, catalog: cat, opts: opts, index: -1}
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.cfg.Levels)
}

// Index returns the index of the current level, or -1 before the first Load.
func (c *Campaign) Index() int {
	return c.index
}

// Current returns the running session.
func (c *Campaign) Current() *Session {
	return c.current
}

// HasNext reports whether another level follows the current one.
func (c *Campaign) HasNext() bool {
	return c.index+1 < c.Len()
}

// Load closes the running session and starts level index. Extra options are
// applied after the campaign's own.
func (c *Campaign) Load(index int, opts ...Option) (*Session, error) {
	if index < 0 || index >= c.Len() {
		return nil, errors.Wrapf(ErrLevelIndex, "%d of %d", index, c.Len())
	}

	lvl, err := level.Load(c.cfg.Levels[index], c.catalog)
	if err != nil {
		return nil, err
	}
	s, err := New(c.cfg, lvl, c.catalog, append(c.opts[:len(c.opts):len(c.opts)], opts...)...)
	if err != nil {
		return nil, err
	}

	if c.current != nil {
		c.current.Close()
	}
	c.index, c.current = index, s
	return s, nil
}

// Next starts the level after the current one.
func (c *Campaign) Next(opts ...Option) (*Session, error) {
	return c.Load(c.index+1, opts...)
}
