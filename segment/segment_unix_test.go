//go:build linux || freebsd || darwin

package segment

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"unsafe"
)

func TestMmapSegment(t *testing.T) {
	s, err := NewMmapSegment(1 << 16)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1<<16), s.Limit())

	addr, ok := s.Grow(64)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), addr)
	assert.Equal(t, uint64(64), s.Hi())

	word := (*uint64)(unsafe.Pointer(uintptr(s.Base())))
	*word = 0x5a5a
	assert.Equal(t, uint64(0x5a5a), *word)

	assert.Nil(t, s.Close())
}

func TestMmapSegmentValidate(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewMmapSegment(0)
	})
}
