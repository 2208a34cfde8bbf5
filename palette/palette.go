// Package palette holds the colours shared by the image renderers.
package palette

import (
	"image/color"

	"github.com/plus3/buildgrid/catalog"
	"github.com/plus3/buildgrid/spatial"
	"github.com/plus3/buildgrid/terrain"
)

var (
	Background = color.RGBA{20, 24, 32, 255}
	Water      = color.RGBA{40, 70, 140, 255}
	Ground     = color.RGBA{120, 160, 80, 255}
	Highground = color.RGBA{150, 140, 100, 255}
	Resource   = color.RGBA{40, 100, 40, 255}
	Goal       = color.RGBA{230, 190, 40, 255}
	Unknown    = color.RGBA{255, 0, 255, 255}
)

var (
	highlights = map[spatial.Style]color.RGBA{
		spatial.StyleBuildable: {255, 255, 255, 60},
		spatial.StyleExpanded:  {120, 220, 255, 100},
		spatial.StyleResource:  {255, 200, 60, 120},
	}

	variants = map[catalog.Variant]color.RGBA{
		catalog.VariantBase:     {200, 60, 50, 255},
		catalog.VariantTower:    {90, 90, 200, 255},
		catalog.VariantVillage:  {170, 110, 60, 255},
		catalog.VariantBarracks: {110, 110, 110, 255},
	}
)

// Terrain returns the colour of a resolved tile.
func Terrain(stack *terrain.Stack, layer *terrain.Layer, flags terrain.Flags) color.RGBA {
	switch {
	case flags.Has(terrain.Resource):
		return Resource
	case !flags.Has(terrain.Buildable):
		return Water
	case stack.ElevationGroupOf(layer) != nil:
		return Highground
	}
	return Ground
}

// Highlight returns the translucent overlay for style. StyleNone is fully
// transparent.
func Highlight(style spatial.Style) color.RGBA {
	return highlights[style]
}

// Variant returns the fill colour of a building variant.
func Variant(v catalog.Variant) color.RGBA {
	if c, ok := variants[v]; ok {
		return c
	}
	return Unknown
}
