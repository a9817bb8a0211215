package heapalloc

import "math"

// Calloc allocates a zeroed block for nitems elements of size bytes each.
// Fails on a zero operand or when the product overflows.
func (h *Heap) Calloc(nitems uint64, size uint64) (uint64, bool) {
	if nitems == 0 || size == 0 {
		return NullPtr, false
	}
	if nitems > math.MaxUint64/size {
		return NullPtr, false
	}
	total := nitems * size

	addr, ok := h.Alloc(total)
	if !ok {
		return NullPtr, false
	}

	b := h.Bytes(addr, total)
	for i := range b {
		b[i] = 0
	}
	return addr, true
}
