package building

import "iter"

const slotBlockSize = 64

// slots stores values in fixed-size blocks and reuses freed slots. Indexes stay
// stable for the lifetime of a value.
type slots[T any] struct {
	blocks    [][slotBlockSize]T
	filled    [][slotBlockSize]bool
	freeSlots []int
	nextIndex int
}

// insert stores item and returns its slot index.
func (s *slots[T]) insert(item T) int {
	var index int
	if n := len(s.freeSlots); n > 0 {
		index = s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
	} else {
		index = s.nextIndex
		s.nextIndex++
		if index/slotBlockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, [slotBlockSize]T{})
			s.filled = append(s.filled, [slotBlockSize]bool{})
		}
	}

	blockIdx, slotIdx := index/slotBlockSize, index%slotBlockSize
	s.blocks[blockIdx][slotIdx] = item
	s.filled[blockIdx][slotIdx] = true
	return index
}

// get returns the value at index.
func (s *slots[T]) get(index int) (T, bool) {
	var zero T
	if !s.has(index) {
		return zero, false
	}
	return s.blocks[index/slotBlockSize][index%slotBlockSize], true
}

// remove empties the slot at index and queues it for reuse.
func (s *slots[T]) remove(index int) (T, bool) {
	var zero T
	if !s.has(index) {
		return zero, false
	}

	blockIdx, slotIdx := index/slotBlockSize, index%slotBlockSize
	item := s.blocks[blockIdx][slotIdx]
	s.blocks[blockIdx][slotIdx] = zero
	s.filled[blockIdx][slotIdx] = false
	s.freeSlots = append(s.freeSlots, index)
	return item, true
}

func (s *slots[T]) has(index int) bool {
	if index < 0 || index >= s.nextIndex {
		return false
	}
	return s.filled[index/slotBlockSize][index%slotBlockSize]
}

// len returns the number of occupied slots.
func (s *slots[T]) len() int {
	return s.nextIndex - len(s.freeSlots)
}

// all iterates occupied slots in index order.
func (s *slots[T]) all() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.nextIndex; i++ {
			blockIdx, slotIdx := i/slotBlockSize, i%slotBlockSize
			if !s.filled[blockIdx][slotIdx] {
				continue
			}
			if !yield(i, s.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}
