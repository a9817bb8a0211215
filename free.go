package heapalloc

// Free returns the block at addr to the free block index,
// merging it with free neighbors. Free(NullPtr) is a no-op.
func (h *Heap) Free(addr uint64) {
	if addr == NullPtr {
		return
	}

	size := h.region.Size(addr)
	h.region.SetTags(addr, size)
	h.memoryUsage -= size

	merged := h.coalesce(addr)

	h.tree.InitNode(merged, h.region.Size(merged))
	h.tree.Insert(merged)
}

// coalesce merges the free block at addr with adjacent free blocks and
// returns the payload address of the surviving block. Absorbed neighbors
// leave the index; only the outer header and footer are rewritten.
func (h *Heap) coalesce(addr uint64) uint64 {
	lo := h.seg.Lo()
	hi := h.seg.Hi()

	// The first block has no prev and the footer before it must not be
	// read; same for next past the heap top.
	prevFree := false
	var prevAddr uint64
	if h.region.HeaderAddr(addr) > lo {
		prevAddr = h.region.Prev(addr)
		prevFree = !h.region.Allocated(prevAddr)
	}

	nextFree := false
	nextAddr := h.region.Next(addr)
	if h.region.HeaderAddr(nextAddr) < hi {
		nextFree = !h.region.Allocated(nextAddr)
	}

	size := h.region.Size(addr)

	switch {
	case !prevFree && !nextFree:
		return addr

	case prevFree && !nextFree:
		h.tree.Delete(prevAddr)

		size += h.region.Size(prevAddr)
		h.region.Write(h.region.FooterAddr(addr), size)
		h.region.Write(h.region.HeaderAddr(prevAddr), size)

		return prevAddr

	case nextFree && !prevFree:
		h.tree.Delete(nextAddr)

		size += h.region.Size(nextAddr)
		h.region.Write(h.region.FooterAddr(nextAddr), size)
		h.region.Write(h.region.HeaderAddr(addr), size)

		return addr

	default:
		h.tree.Delete(prevAddr)
		h.tree.Delete(nextAddr)

		size += h.region.Size(prevAddr) + h.region.Size(nextAddr)
		h.region.Write(h.region.FooterAddr(nextAddr), size)
		h.region.Write(h.region.HeaderAddr(prevAddr), size)

		return prevAddr
	}
}
