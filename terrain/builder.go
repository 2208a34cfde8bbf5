package terrain

import "github.com/pkg/errors"

// Builder assembles a Stack from named declarations, resolving parent names.
type Builder struct {
	groups map[string]*Group
	layers []*Layer
	names  map[string]bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		groups: make(map[string]*Group),
		names:  make(map[string]bool),
	}
}

// Group declares a group. parent may be empty for a top-level group; otherwise it
// must already be declared.
func (b *Builder) Group(name, parent string, elevation bool) (*Group, error) {
	if _, dup := b.groups[name]; dup {
		return nil, errors.Wrapf(ErrDuplicateName, "group %q", name)
	}
	p, err := b.lookup(parent)
	if err != nil {
		return nil, errors.Wrapf(err, "group %q", name)
	}
	g := &Group{Name: name, Elevation: elevation, Parent: p}
	b.groups[name] = g
	return g, nil
}

// Layer appends a layer to the scan order.
func (b *Builder) Layer(name, group string, src Source) (*Layer, error) {
	if b.names[name] {
		return nil, errors.Wrapf(ErrDuplicateName, "layer %q", name)
	}
	p, err := b.lookup(group)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", name)
	}
	l := &Layer{Name: name, Parent: p, Source: src}
	b.layers = append(b.layers, l)
	b.names[name] = true
	return l, nil
}

func (b *Builder) lookup(name string) (*Group, error) {
	if name == "" {
		return nil, nil
	}
	g, ok := b.groups[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGroup, "%q", name)
	}
	return g, nil
}

// Build creates the stack.
func (b *Builder) Build() (*Stack, error) {
	return NewStack(b.layers...)
}
