package heapalloc

import "github.com/quanghm/heapalloc/block"

// Realloc resizes the block at addr to hold at least payload bytes.
//
// Realloc(NullPtr, n) behaves like Alloc(n). Realloc(addr, 0) frees the
// block and reports no address. A shrink stays in place, splitting off the
// tail as a free block when it is large enough; a grow allocates a new
// block, copies the payload and frees the old block. The old block is kept
// when the grow allocation fails.
func (h *Heap) Realloc(addr uint64, payload uint64) (uint64, bool) {
	if addr == NullPtr {
		return h.Alloc(payload)
	}

	if payload == 0 {
		h.Free(addr)
		return NullPtr, false
	}

	oldSize := h.region.Size(addr)
	oldPayload := oldSize - block.HeaderSize - block.FooterSize

	newSize, ok := blockSizeFor(payload)
	if !ok {
		return NullPtr, false
	}

	if newSize <= oldSize {
		rem := oldSize - newSize
		if rem < MinBlockSize {
			return addr, true
		}

		h.region.SetTags(addr, newSize|block.AllocBit)

		remAddr := h.region.Next(addr)
		h.region.SetTags(remAddr, rem)
		h.Free(remAddr)

		return addr, true
	}

	newAddr, ok := h.Alloc(payload)
	if !ok {
		return NullPtr, false
	}

	copySize := oldPayload
	if payload < copySize {
		copySize = payload
	}
	copy(h.Bytes(newAddr, copySize), h.Bytes(addr, copySize))

	h.Free(addr)
	return newAddr, true
}
