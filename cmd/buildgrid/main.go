// Command buildgrid runs the campaign in a window, with the Dear ImGui
// inspector when the config enables it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/debugui"
	debugui_ebiten "github.com/plus3/buildgrid/debugui/ebiten"
	frontend "github.com/plus3/buildgrid/frontend/ebiten"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
)

func main() {
	configPath := flag.String("config", "buildgrid.yaml", "Path to the application config.")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "buildgrid:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	ebiten.SetTPS(cfg.TickRateHz)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	var game *frontend.Game
	opts := []frontend.Option{frontend.WithLogger(logger)}
	if cfg.DebugUI {
		backend := debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		panels := debugui.NewPanels(func(t placement.Trigger) { game.Push(t) })
		opts = append(opts,
			frontend.WithOverlay(backend),
			frontend.WithInputCapture(panels.Capture),
			frontend.OnAttach(panels.Attach),
		)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}

	campaign := session.NewCampaign(cfg, cat, session.WithLogger(logger))
	game, err = frontend.New(campaign, cat, opts...)
	if err != nil {
		return err
	}

	logger.Info("starting", "levels", campaign.Len(), "tps", cfg.TickRateHz, "debug_ui", cfg.DebugUI)
	return ebiten.RunGame(game)
}
