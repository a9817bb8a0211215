package heapalloc

import (
	"github.com/quanghm/heapalloc/avl"
	"github.com/quanghm/heapalloc/block"
	"github.com/quanghm/heapalloc/segment"
	"math"
	"unsafe"
)

// NullPtr is the null payload address. Free and Realloc accept it the way
// free(NULL) and realloc(NULL, n) behave.
const NullPtr uint64 = math.MaxUint64

// MinBlockSize is the smallest total block size: header + footer plus room
// for the free block index record inside the payload.
var MinBlockSize = block.AlignUp(
	block.HeaderSize + block.FooterSize + block.AlignUp(avl.NodeSize))

// Config ...
type Config struct {
	MemLimit int
}

// Heap owns the free block index root and the heap watermarks.
// It is not safe for concurrent use.
type Heap struct {
	seg    *segment.Segment
	region block.Region
	tree   avl.Tree

	memoryUsage uint64
}

func validateConfig(conf Config) {
	if conf.MemLimit <= 0 {
		panic("MemLimit must > 0")
	}
}

// New ...
func New(conf Config) *Heap {
	validateConfig(conf)
	return NewWithSegment(segment.NewSegment(conf.MemLimit))
}

// NewWithSegment ...
func NewWithSegment(seg *segment.Segment) *Heap {
	h := &Heap{
		seg:    seg,
		region: block.NewRegion(seg.Base()),
	}
	avl.TreeInit(&h.tree, seg.Base())
	return h
}

// Total block size for a payload request, rounded up for alignment.
func blockSizeFor(payload uint64) (uint64, bool) {
	size := block.AlignUp(payload + block.HeaderSize + block.FooterSize)
	if size < payload {
		return 0, false
	}
	if size < MinBlockSize {
		size = MinBlockSize
	}
	return size, true
}

// Alloc allocates a block with at least payload bytes of payload and
// returns its payload address.
func (h *Heap) Alloc(payload uint64) (uint64, bool) {
	size, ok := blockSizeFor(payload)
	if !ok {
		return NullPtr, false
	}

	addr, ok := h.tree.PopBestFit(size)
	if !ok {
		return h.extendHeap(size)
	}

	freeSize := h.tree.Size(addr)
	if freeSize-size >= MinBlockSize {
		return h.splitBlock(addr, freeSize, size), true
	}

	// Remainder too small for a block, hand out the whole thing
	h.region.SetTags(addr, freeSize|block.AllocBit)
	h.memoryUsage += freeSize
	return addr, true
}

// Extends the heap and covers the new bytes with a single allocated block.
func (h *Heap) extendHeap(size uint64) (uint64, bool) {
	old, ok := h.seg.Grow(size)
	if !ok {
		return NullPtr, false
	}

	addr := old + block.HeaderSize
	h.region.SetTags(addr, size|block.AllocBit)
	h.memoryUsage += size
	return addr, true
}

// Splits the popped free block at addr into an allocated prefix of size
// bytes and a free remainder which goes back into the index.
func (h *Heap) splitBlock(addr uint64, freeSize uint64, size uint64) uint64 {
	h.region.SetTags(addr, size|block.AllocBit)

	rem := freeSize - size
	remAddr := addr + size
	h.region.SetTags(remAddr, rem)

	h.tree.InitNode(remAddr, rem)
	h.tree.Insert(remAddr)

	h.memoryUsage += size
	return addr
}

// Bytes returns the length bytes starting at addr.
func (h *Heap) Bytes(addr uint64, length uint64) []byte {
	return unsafe.Slice((*byte)(h.ToRealAddr(addr)), length)
}

// ToRealAddr ...
func (h *Heap) ToRealAddr(addr uint64) unsafe.Pointer {
	return unsafe.Pointer(uintptr(h.seg.Base()) + uintptr(addr))
}

// GetMemUsage returns the total size of currently allocated blocks.
func (h *Heap) GetMemUsage() uint64 {
	return h.memoryUsage
}

// HeapSize ...
func (h *Heap) HeapSize() uint64 {
	return h.seg.Hi() - h.seg.Lo()
}

type blockInfo struct {
	addr  uint64
	size  uint64
	alloc bool
}

func (h *Heap) blocks() []blockInfo {
	var result []blockInfo
	addr := h.seg.Lo() + block.HeaderSize
	for h.region.HeaderAddr(addr) < h.seg.Hi() {
		result = append(result, blockInfo{
			addr:  addr,
			size:  h.region.Size(addr),
			alloc: h.region.Allocated(addr),
		})
		addr = h.region.Next(addr)
	}
	return result
}
