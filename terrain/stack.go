// Package terrain classifies cells against a stack of tile layers. A cell resolves
// to the first layer, in scan order, that holds data there and does not mark it
// ignored; the flags of that layer decide whether the cell is buildable or
// resource-bearing.
package terrain

import (
	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/grid"
)

var (
	// ErrUnknownGroup is returned when a layer or group names a parent that was never declared.
	ErrUnknownGroup = errors.New("terrain: unknown group")
	// ErrDuplicateName is returned when two layers or two groups share a name.
	ErrDuplicateName = errors.New("terrain: duplicate name")
	// ErrNoSource is returned for a layer without tile data.
	ErrNoSource = errors.New("terrain: layer has no source")
)

// Stack is an ordered set of layers. It is read-only once built.
type Stack struct {
	layers    []*Layer
	byName    map[string]*Layer
	elevation map[*Layer]*Group
}

// NewStack creates a stack that scans layers in the given order.
func NewStack(layers ...*Layer) (*Stack, error) {
	s := &Stack{
		layers:    make([]*Layer, 0, len(layers)),
		byName:    make(map[string]*Layer, len(layers)),
		elevation: make(map[*Layer]*Group, len(layers)),
	}

	for _, layer := range layers {
		if layer.Source == nil {
			return nil, errors.Wrapf(ErrNoSource, "layer %q", layer.Name)
		}
		if _, dup := s.byName[layer.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateName, "layer %q", layer.Name)
		}
		s.layers = append(s.layers, layer)
		s.byName[layer.Name] = layer
		s.elevation[layer] = findElevationGroup(layer)
	}

	return s, nil
}

// findElevationGroup walks the layer's ancestry up to the first elevation group.
func findElevationGroup(layer *Layer) *Group {
	for g := layer.Parent; g != nil; g = g.Parent {
		if g.Elevation {
			return g
		}
	}
	return nil
}

// Layers returns the layers in scan order.
func (s *Stack) Layers() []*Layer {
	return s.layers
}

// Layer returns the named layer or nil.
func (s *Stack) Layer(name string) *Layer {
	return s.byName[name]
}

// TileData returns the raw data layer holds at c.
func (s *Stack) TileData(c grid.Cell, layer *Layer) (Flags, bool) {
	if layer == nil {
		return 0, false
	}
	return layer.Source.TileData(c)
}

// Resolve returns the first layer holding non-ignored data at c, with its flags.
// ok is false when no layer claims the cell.
func (s *Stack) Resolve(c grid.Cell) (layer *Layer, flags Flags, ok bool) {
	for _, l := range s.layers {
		f, present := l.Source.TileData(c)
		if !present || f.Has(Ignored) {
			continue
		}
		return l, f, true
	}
	return nil, 0, false
}

// IsBuildable reports whether the resolved layer at c is buildable.
func (s *Stack) IsBuildable(c grid.Cell) bool {
	_, f, ok := s.Resolve(c)
	return ok && f.Has(Buildable)
}

// IsResource reports whether the resolved layer at c bears resources.
func (s *Stack) IsResource(c grid.Cell) bool {
	_, f, ok := s.Resolve(c)
	return ok && f.Has(Resource)
}

// ElevationGroupOf returns the elevation group owning layer. Layers outside any
// elevation group share the nil group.
func (s *Stack) ElevationGroupOf(layer *Layer) *Group {
	if g, ok := s.elevation[layer]; ok {
		return g
	}
	return findElevationGroup(layer)
}

// Bounds returns the smallest area covering every bounded layer.
func (s *Stack) Bounds() grid.Area {
	var out grid.Area
	for _, l := range s.layers {
		b, ok := l.Source.(Bounded)
		if !ok {
			continue
		}
		out = unionArea(out, b.Bounds())
	}
	return out
}

func unionArea(a, b grid.Area) grid.Area {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	ae, be := a.End(), b.End()
	origin := grid.Cell{X: min(a.Origin.X, b.Origin.X), Y: min(a.Origin.Y, b.Origin.Y)}
	end := grid.Cell{X: max(ae.X, be.X), Y: max(ae.Y, be.Y)}
	return grid.NewArea(origin, end.X-origin.X, end.Y-origin.Y)
}
