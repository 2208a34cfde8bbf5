// Command buildgrid-tui runs the campaign in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/frontend/tui"
	"github.com/plus3/buildgrid/session"
)

func main() {
	configPath := flag.String("config", "buildgrid.yaml", "Path to the application config.")
	logPath := flag.String("log", "", "File to write logs to. Logging is off when empty.")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "buildgrid-tui:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if logPath != "" {
		level, err := cfg.SlogLevel()
		if err != nil {
			return err
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	f := tui.New(screen, cat, logger)
	campaign := session.NewCampaign(cfg, cat, session.WithLogger(logger))
	s, err := campaign.Load(0, f.SessionOptions()...)
	if err != nil {
		return err
	}
	f.Attach(s)

	w, h := f.MinSize()
	if sw, sh := screen.Size(); sw < w || sh < h {
		logger.Warn("terminal smaller than the map", "need", fmt.Sprintf("%dx%d", w, h), "have", fmt.Sprintf("%dx%d", sw, sh))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = f.Run(ctx, campaign, cfg.TickInterval())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
