package building

// ID identifies a building in a Registry. The slot index occupies the lower 32
// bits and the slot's generation the upper 32 bits, so an ID held after its
// building was removed never resolves to the slot's next occupant.
type ID uint64

// NewID packs a generation and slot index.
func NewID(generation uint32, slot uint32) ID {
	return ID(uint64(generation)<<32 | uint64(slot))
}

// Generation extracts the generation counter.
func (id ID) Generation() uint32 {
	return uint32(id >> 32)
}

// Slot extracts the slot index.
func (id ID) Slot() uint32 {
	return uint32(id & 0xFFFFFFFF)
}
