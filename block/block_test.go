package block

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"unsafe"
)

func TestAlignUp(t *testing.T) {
	table := []struct {
		name     string
		input    uint64
		expected uint64
	}{
		{name: "zero", input: 0, expected: 0},
		{name: "one", input: 1, expected: 16},
		{name: "below", input: 15, expected: 16},
		{name: "exact", input: 16, expected: 16},
		{name: "above", input: 17, expected: 32},
		{name: "large", input: 2016, expected: 2016},
		{name: "large-odd", input: 2001, expected: 2016},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			assert.Equal(t, e.expected, AlignUp(e.input))
		})
	}
}

func TestSizeOfWord(t *testing.T) {
	assert.Equal(t, uint64(48), SizeOfWord(48|AllocBit))
	assert.Equal(t, uint64(48), SizeOfWord(48))
	assert.Equal(t, uint64(2016), SizeOfWord(2016|AllocBit))
}

func TestRegionTags(t *testing.T) {
	data := make([]uint64, 1<<10)
	r := NewRegion(unsafe.Pointer(&data[0]))

	p := HeaderSize
	r.SetTags(p, 48|AllocBit)

	assert.Equal(t, uint64(48|AllocBit), r.Value(0))
	assert.Equal(t, uint64(48|AllocBit), r.Value(40))
	assert.Equal(t, uint64(0), r.HeaderAddr(p))
	assert.Equal(t, uint64(40), r.FooterAddr(p))
	assert.Equal(t, uint64(48), r.Size(p))
	assert.True(t, r.Allocated(p))
}

func TestRegionNextPrev(t *testing.T) {
	data := make([]uint64, 1<<10)
	r := NewRegion(unsafe.Pointer(&data[0]))

	first := HeaderSize
	r.SetTags(first, 48|AllocBit)

	second := r.Next(first)
	assert.Equal(t, uint64(56), second)
	r.SetTags(second, 96)

	assert.Equal(t, uint64(48), r.HeaderAddr(second))
	assert.Equal(t, uint64(136), r.FooterAddr(second))
	assert.False(t, r.Allocated(second))

	assert.Equal(t, first, r.Prev(second))
	assert.Equal(t, uint64(152), r.Next(second))
}

func TestRegionRewriteTags(t *testing.T) {
	data := make([]uint64, 1<<10)
	r := NewRegion(unsafe.Pointer(&data[0]))

	p := HeaderSize
	r.SetTags(p, 144|AllocBit)
	r.SetTags(p, 144)

	assert.False(t, r.Allocated(p))
	assert.Equal(t, uint64(144), r.Size(p))
	assert.Equal(t, r.Value(r.HeaderAddr(p)), r.Value(r.FooterAddr(p)))
}
