package segment

import "unsafe"

// Segment is a reserved contiguous region with an sbrk style break pointer.
// Addresses handed out are byte offsets from Base.
type Segment struct {
	base  unsafe.Pointer
	limit uint64
	brk   uint64

	data  []uint64
	unmap func() error
}

func allocateData(limit int) []uint64 {
	return make([]uint64, (uint64(limit)+7)>>3)
}

// NewSegment ...
func NewSegment(limit int) *Segment {
	if limit <= 0 {
		panic("limit must > 0")
	}
	data := allocateData(limit)
	return &Segment{
		base:  unsafe.Pointer(&data[0]),
		limit: uint64(len(data)) << 3,
		data:  data,
	}
}

// Grow extends the break by n bytes and returns the old top.
// Fails without moving the break when the reserved limit would be passed.
// n must already be aligned by the caller.
func (s *Segment) Grow(n uint64) (uint64, bool) {
	if n > s.limit-s.brk {
		return 0, false
	}
	old := s.brk
	s.brk += n
	return old, true
}

// Lo ...
func (s *Segment) Lo() uint64 {
	return 0
}

// Hi ...
func (s *Segment) Hi() uint64 {
	return s.brk
}

// InHeap ...
func (s *Segment) InHeap(addr uint64) bool {
	return addr < s.brk
}

// Base ...
func (s *Segment) Base() unsafe.Pointer {
	return s.base
}

// Limit ...
func (s *Segment) Limit() uint64 {
	return s.limit
}

// Close releases the region when it is backed by a mapping.
func (s *Segment) Close() error {
	if s.unmap != nil {
		return s.unmap()
	}
	return nil
}
