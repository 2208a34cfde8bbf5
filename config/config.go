// Package config loads the application settings shared by the buildgrid binaries.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the loaded settings fail validation.
var ErrInvalidConfig = errors.New("config: invalid config")

type Config struct {
	Window           Window   `yaml:"window"`
	TickRateHz       int      `yaml:"tick_rate_hz"`
	Catalog          string   `yaml:"catalog"`
	Levels           []string `yaml:"levels"`
	LogLevel         string   `yaml:"log_level"`
	StrictInvariants bool     `yaml:"strict_invariants"`
	DebugUI          bool     `yaml:"debug_ui"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Defaults returns the settings used when no file is given.
func Defaults() Config {
	return Config{
		Window:     Window{Title: "buildgrid", Width: 1280, Height: 720},
		TickRateHz: 60,
		Catalog:    "levels/buildings.yaml",
		Levels:     []string{"levels/level1.yaml", "levels/level2.yaml"},
		LogLevel:   "info",
		DebugUI:    true,
	}
}

// Load reads path over the defaults. An empty path yields the defaults. Relative
// catalog and level paths are resolved against the directory holding path.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize("")
		return cfg, cfg.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, filepath.Base(path))
	}
	cfg.Normalize(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, filepath.Base(path))
	}
	return cfg, nil
}

// Normalize fills zero values from the defaults and resolves relative paths
// against baseDir.
func (c *Config) Normalize(baseDir string) {
	d := Defaults()
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = d.Window.Height
	}
	if c.TickRateHz == 0 {
		c.TickRateHz = d.TickRateHz
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}

	if baseDir == "" {
		return
	}
	c.Catalog = resolve(baseDir, c.Catalog)
	for i, l := range c.Levels {
		c.Levels[i] = resolve(baseDir, l)
	}
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width < 0 || c.Window.Height < 0:
		return errors.Wrapf(ErrInvalidConfig, "window %dx%d", c.Window.Width, c.Window.Height)
	case c.TickRateHz < 1 || c.TickRateHz > 1000:
		return errors.Wrapf(ErrInvalidConfig, "tick_rate_hz %d", c.TickRateHz)
	case c.Catalog == "":
		return errors.Wrap(ErrInvalidConfig, "catalog is required")
	case len(c.Levels) == 0:
		return errors.Wrap(ErrInvalidConfig, "at least one level is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "log_level %q", c.LogLevel)
	}
	return level, nil
}

// TickInterval is the duration of one frame.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}
