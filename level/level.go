// Package level loads level documents: the terrain layer stack, the goal
// cells and the buildings present when the level starts.
//
// Terrain rows are strings of palette runes. A space leaves the cell without
// data on that layer; every other rune must be declared in the palette.
package level

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/schemas"
	"github.com/plus3/buildgrid/terrain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned for documents that cannot be turned into a level.
var ErrInvalidLevel = errors.New("level: invalid level")

const (
	DefaultTileSize          = 64
	DefaultStartingResources = 6
)

//go:embed level.schema.json
var schemaSource string

var schema = schemas.MustCompile("level.schema.json", schemaSource)

// Placement is a building present at level start.
type Placement struct {
	Template *catalog.Template
	Cell     grid.Cell
}

// Level is a loaded level.
type Level struct {
	Name              string
	TileSize          float64
	StartingResources int
	Terrain           *terrain.Stack
	Goals             []grid.Cell
	Buildings         []Placement
}

type document struct {
	Name              string                     `yaml:"name"`
	TileSize          float64                    `yaml:"tile_size"`
	StartingResources *int                       `yaml:"starting_resources"`
	Palette           map[string]map[string]bool `yaml:"palette"`
	Groups            []groupDoc                 `yaml:"groups"`
	Layers            []layerDoc                 `yaml:"layers"`
	Goals             [][]int                    `yaml:"goals"`
	Buildings         []buildingDoc              `yaml:"buildings"`
}

type groupDoc struct {
	Name      string `yaml:"name"`
	Parent    string `yaml:"parent"`
	Elevation bool   `yaml:"elevation"`
}

type layerDoc struct {
	Name   string   `yaml:"name"`
	Group  string   `yaml:"group"`
	Origin []int    `yaml:"origin"`
	Rows   []string `yaml:"rows"`
}

type buildingDoc struct {
	Template string `yaml:"template"`
	Cell     []int  `yaml:"cell"`
}

// Load reads a level document from path. Building templates are resolved
// against cat.
func Load(path string, cat *catalog.Catalog) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(raw, cat)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return l, nil
}

// Parse validates and decodes a level document.
func Parse(raw []byte, cat *catalog.Catalog) (*Level, error) {
	if err := schemas.Validate(schema, raw); err != nil {
		return nil, errors.Wrap(ErrInvalidLevel, err.Error())
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "level")
	}

	l := &Level{
		Name:              doc.Name,
		TileSize:          doc.TileSize,
		StartingResources: DefaultStartingResources,
	}
	if l.TileSize == 0 {
		l.TileSize = DefaultTileSize
	}
	if doc.StartingResources != nil {
		l.StartingResources = *doc.StartingResources
	}

	palette, err := parsePalette(doc.Palette)
	if err != nil {
		return nil, err
	}

	stack, err := buildStack(doc, palette)
	if err != nil {
		return nil, errors.Wrap(err, "terrain")
	}
	l.Terrain = stack

	for _, g := range doc.Goals {
		l.Goals = append(l.Goals, cellOf(g))
	}

	for i, b := range doc.Buildings {
		t, ok := cat.ByID(b.Template)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidLevel, "building %d: unknown template %q", i, b.Template)
		}
		l.Buildings = append(l.Buildings, Placement{Template: t, Cell: cellOf(b.Cell)})
	}

	return l, nil
}

func parsePalette(doc map[string]map[string]bool) (map[rune]terrain.Flags, error) {
	palette := make(map[rune]terrain.Flags, len(doc))
	for key, data := range doc {
		runes := []rune(key)
		if len(runes) != 1 || runes[0] == ' ' {
			return nil, errors.Wrapf(ErrInvalidLevel, "palette key %q", key)
		}
		flags, unknown := terrain.FlagsFromKeys(data)
		if len(unknown) > 0 {
			return nil, errors.Wrapf(ErrInvalidLevel, "palette %q: unknown keys %v", key, unknown)
		}
		palette[runes[0]] = flags
	}
	return palette, nil
}

func buildStack(doc document, palette map[rune]terrain.Flags) (*terrain.Stack, error) {
	b := terrain.NewBuilder()
	for _, g := range doc.Groups {
		if _, err := b.Group(g.Name, g.Parent, g.Elevation); err != nil {
			return nil, err
		}
	}

	for _, ld := range doc.Layers {
		tiles := terrain.NewTileLayer()
		origin := cellOf(ld.Origin)
		for y, row := range ld.Rows {
			x := 0
			for _, r := range row {
				if r != ' ' {
					flags, ok := palette[r]
					if !ok {
						return nil, errors.Wrapf(ErrInvalidLevel, "layer %q row %d: rune %q not in palette", ld.Name, y, r)
					}
					tiles.Set(origin.Add(grid.Cell{X: x, Y: y}), flags)
				}
				x++
			}
		}
		if _, err := b.Layer(ld.Name, ld.Group, tiles); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

func cellOf(xy []int) grid.Cell {
	if len(xy) < 2 {
		return grid.Cell{}
	}
	return grid.Cell{X: xy[0], Y: xy[1]}
}
