// Command gridsnap loads a level, replays a placement script against it
// without a window and writes the result as a report and a PNG image.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/config"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
	"github.com/plus3/buildgrid/snapshot"
)

func main() {
	configPath := flag.String("config", "", "Path to the application config. Defaults are used when empty.")
	levelIndex := flag.Int("level", -1, "Level index in the config. Overrides the script's level.")
	scriptPath := flag.String("script", "", "Placement script to replay.")
	out := flag.String("out", "", "PNG file to write. Nothing is written when empty.")
	cellSize := flag.Int("cell", 16, "Cell size in pixels of the image.")
	highlights := flag.Bool("highlights", true, "Draw the buildable tiles in the image.")
	flag.Parse()

	if err := run(*configPath, *levelIndex, *scriptPath, *out, *cellSize, *highlights); err != nil {
		fmt.Fprintln(os.Stderr, "gridsnap:", err)
		os.Exit(1)
	}
}

func run(configPath string, levelIndex int, scriptPath, out string, cellSize int, highlights bool) error {
	cfg := config.Defaults()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	script := &Script{}
	if scriptPath != "" {
		if script, err = LoadScript(scriptPath); err != nil {
			return err
		}
	}
	if levelIndex >= 0 {
		script.Level = levelIndex
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	var queue placement.Queue
	campaign := session.NewCampaign(cfg, cat, session.WithLogger(logger), session.WithInput(&queue))
	s, err := campaign.Load(script.Level)
	if err != nil {
		return err
	}
	defer s.Close()

	steps, err := Replay(s, &queue, script)
	if err != nil {
		return err
	}

	if highlights {
		s.Grid.HighlightBuildable()
	}
	report := NewReport(s, steps)
	if out != "" {
		opts := snapshot.Options{CellSize: cellSize, Highlights: highlights}
		if err := snapshot.SavePNG(out, s, opts); err != nil {
			return err
		}
		report.Image = out
	}

	logger.Info("replay finished", "steps", len(steps), "won", s.Won())
	return report.Generate(os.Stdout)
}
