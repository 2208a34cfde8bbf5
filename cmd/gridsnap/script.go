package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/schemas"
	"github.com/plus3/buildgrid/session"
	"gopkg.in/yaml.v3"
)

//go:embed script.schema.json
var scriptSchemaSource string

var scriptSchema = schemas.MustCompile("script.schema.json", scriptSchemaSource)

// Script is a list of player actions replayed one per frame.
type Script struct {
	Level int    `yaml:"level"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Select  string `yaml:"select"`
	Move    []int  `yaml:"move"`
	Place   []int  `yaml:"place"`
	Destroy []int  `yaml:"destroy"`
	Cancel  bool   `yaml:"cancel"`
}

func (s Step) String() string {
	switch {
	case s.Select != "":
		return "select " + s.Select
	case s.Move != nil:
		return fmt.Sprintf("move %v", cellOf(s.Move))
	case s.Place != nil:
		return fmt.Sprintf("place %v", cellOf(s.Place))
	case s.Destroy != nil:
		return fmt.Sprintf("destroy %v", cellOf(s.Destroy))
	case s.Cancel:
		return "cancel"
	}
	return "noop"
}

func cellOf(xy []int) grid.Cell {
	return grid.Cell{X: xy[0], Y: xy[1]}
}

// LoadScript reads a script from path.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	script, err := ParseScript(raw)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return script, nil
}

// ParseScript validates and decodes a script.
func ParseScript(raw []byte) (*Script, error) {
	if err := schemas.Validate(scriptSchema, raw); err != nil {
		return nil, errors.Wrap(err, "script")
	}
	var script Script
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return nil, errors.Wrap(err, "script")
	}
	return &script, nil
}

// StepResult is the session state after one step.
type StepResult struct {
	Index     int
	Step      string
	State     placement.State
	Available int
	Buildings int
	Won       bool
}

// Replay runs every step of script against s through queue, ticking once per
// step. queue must be the session's input.
func Replay(s *session.Session, queue *placement.Queue, script *Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))
	for i, step := range script.Steps {
		if err := apply(s, queue, step); err != nil {
			return results, errors.Wrapf(err, "step %d", i+1)
		}
		s.Tick(1 / 60.0)

		results = append(results, StepResult{
			Index:     i + 1,
			Step:      step.String(),
			State:     s.Placement.State(),
			Available: s.Placement.Available(),
			Buildings: s.Buildings.Len(),
			Won:       s.Won(),
		})
	}
	return results, nil
}

func apply(s *session.Session, queue *placement.Queue, step Step) error {
	point := func(xy []int) {
		size := s.Level.TileSize
		x, y := cellOf(xy).Position(size)
		queue.Point(x+size/2, y+size/2)
	}

	switch {
	case step.Select != "":
		t, ok := s.Catalog.ByID(step.Select)
		if !ok {
			return errors.Errorf("unknown template %q", step.Select)
		}
		queue.Push(placement.Select(t))
	case step.Move != nil:
		point(step.Move)
	case step.Place != nil:
		point(step.Place)
		queue.Push(placement.Confirm)
	case step.Destroy != nil:
		point(step.Destroy)
		queue.Push(placement.Destroy)
	case step.Cancel:
		queue.Push(placement.Cancel)
	}
	return nil
}
