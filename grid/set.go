package grid

import (
	"cmp"
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// CellSet is an unordered set of cells backed by an integer hash set.
// Read methods are safe on a nil *CellSet.
type CellSet struct {
	set *intmap.Set[Key]
}

// NewCellSet creates an empty set sized for capacity cells.
func NewCellSet(capacity int) *CellSet {
	return &CellSet{set: intmap.NewSet[Key](capacity)}
}

// CellSetOf builds a set holding cells.
func CellSetOf(cells ...Cell) *CellSet {
	s := NewCellSet(len(cells))
	s.AddAll(cells)
	return s
}

// Add inserts c.
func (s *CellSet) Add(c Cell) {
	s.set.Add(c.Key())
}

// AddAll inserts every cell and returns how many were not already present.
func (s *CellSet) AddAll(cells []Cell) int {
	before := s.set.Len()
	for _, c := range cells {
		s.set.Add(c.Key())
	}
	return s.set.Len() - before
}

// AddSeq inserts every cell yielded by seq.
func (s *CellSet) AddSeq(seq iter.Seq[Cell]) {
	for c := range seq {
		s.set.Add(c.Key())
	}
}

// Has reports whether c is in the set.
func (s *CellSet) Has(c Cell) bool {
	if s == nil {
		return false
	}
	return s.set.Has(c.Key())
}

// Del removes c, reporting whether it was present.
func (s *CellSet) Del(c Cell) bool {
	return s.set.Del(c.Key())
}

// Len returns the number of cells in the set.
func (s *CellSet) Len() int {
	if s == nil {
		return 0
	}
	return s.set.Len()
}

// Clear removes every cell but keeps the allocated buffers.
func (s *CellSet) Clear() {
	s.set.Clear()
}

// All iterates the cells in no particular order.
func (s *CellSet) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if s == nil {
			return
		}
		for k := range s.set.All() {
			if !yield(k.Cell()) {
				return
			}
		}
	}
}

// Union adds every cell of o.
func (s *CellSet) Union(o *CellSet) {
	if o == nil || o == s {
		return
	}
	for k := range o.set.All() {
		s.set.Add(k)
	}
}

// Subtract removes every cell of o.
func (s *CellSet) Subtract(o *CellSet) {
	if o == nil {
		return
	}
	if o == s {
		s.Clear()
		return
	}
	for k := range o.set.All() {
		s.set.Del(k)
	}
}

// Intersects reports whether s and o share at least one cell.
func (s *CellSet) Intersects(o *CellSet) bool {
	small, large := s, o
	if small.Len() > large.Len() {
		small, large = large, small
	}
	for c := range small.All() {
		if large.Has(c) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same cells.
func (s *CellSet) Equal(o *CellSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for c := range s.All() {
		if !o.Has(c) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *CellSet) Clone() *CellSet {
	c := NewCellSet(s.Len())
	c.Union(s)
	return c
}

// Sorted returns the cells ordered by X, then Y.
func (s *CellSet) Sorted() []Cell {
	cells := slices.Collect(s.All())
	slices.SortFunc(cells, CompareCells)
	return cells
}

// CompareCells orders cells by X, then Y.
func CompareCells(a, b Cell) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}
