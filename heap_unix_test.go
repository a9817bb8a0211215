//go:build linux || freebsd || darwin

package heapalloc

import (
	"github.com/quanghm/heapalloc/segment"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestHeapOnMmapSegment(t *testing.T) {
	seg, err := segment.NewMmapSegment(1 << 20)
	assert.Nil(t, err)
	defer func() {
		assert.Nil(t, seg.Close())
	}()

	h := NewWithSegment(seg)

	p, ok := h.Alloc(64)
	assert.True(t, ok)
	fillBytes(h.Bytes(p, 64), 0x7C)
	assert.Equal(t, repeatBytes(0x7C, 64), h.Bytes(p, 64))

	h.Free(p)
	checkHeapInvariants(t, h)

	q, ok := h.Alloc(32)
	assert.True(t, ok)
	assert.Equal(t, p, q)
	checkHeapInvariants(t, h)
}
