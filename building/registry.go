package building

import (
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/plus3/buildgrid/grid"
)

// Registry owns the live buildings of a session. Iteration follows slot order,
// which is insertion order until a removed slot is reused.
type Registry struct {
	slots       slots[*Building]
	generations []uint32
	cells       *intmap.Map[grid.Key, ID]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cells: intmap.New[grid.Key, ID](256),
	}
}

// Add registers an activated building, assigns its ID and returns it.
func (r *Registry) Add(b *Building) ID {
	if !b.Active() {
		panic("building: registering inactive building " + b.String())
	}

	slot := r.slots.insert(b)
	for len(r.generations) <= slot {
		r.generations = append(r.generations, 0)
	}
	r.generations[slot]++

	b.ID = NewID(r.generations[slot], uint32(slot))
	for c := range b.footprint.Area.Cells() {
		r.cells.Put(c.Key(), b.ID)
	}
	return b.ID
}

// Get returns the building registered under id.
func (r *Registry) Get(id ID) (*Building, bool) {
	slot := int(id.Slot())
	if slot >= len(r.generations) || r.generations[slot] != id.Generation() {
		return nil, false
	}
	return r.slots.get(slot)
}

// Remove unregisters the building under id and returns it.
func (r *Registry) Remove(id ID) (*Building, bool) {
	b, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	r.slots.remove(int(id.Slot()))

	var orphaned []grid.Cell
	for c := range b.footprint.Area.Cells() {
		if owner, _ := r.cells.Get(c.Key()); owner == id {
			r.cells.Del(c.Key())
			orphaned = append(orphaned, c)
		}
	}
	r.reindex(orphaned)
	return b, true
}

// reindex hands cells whose owner was removed to any other building covering them.
func (r *Registry) reindex(cells []grid.Cell) {
	if len(cells) == 0 {
		return
	}
	for _, b := range r.slots.all() {
		for _, c := range cells {
			if b.footprint.Contains(c) && !r.cells.Has(c.Key()) {
				r.cells.Put(c.Key(), b.ID)
			}
		}
	}
}

// At returns the building covering c.
func (r *Registry) At(c grid.Cell) (*Building, bool) {
	id, ok := r.cells.Get(c.Key())
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// All iterates the live buildings.
func (r *Registry) All() iter.Seq[*Building] {
	return func(yield func(*Building) bool) {
		for _, b := range r.slots.all() {
			if !yield(b) {
				return
			}
		}
	}
}

// Footprints iterates the footprints of the live buildings.
func (r *Registry) Footprints() iter.Seq[*Footprint] {
	return func(yield func(*Footprint) bool) {
		for _, b := range r.slots.all() {
			if !yield(b.footprint) {
				return
			}
		}
	}
}

// Len returns the number of live buildings.
func (r *Registry) Len() int {
	return r.slots.len()
}
