//go:build linux || freebsd || darwin

package segment

import (
	"golang.org/x/sys/unix"
	"unsafe"
)

// NewMmapSegment reserves the region with an anonymous private mapping
// instead of a Go slice. Close unmaps it.
func NewMmapSegment(limit int) (*Segment, error) {
	if limit <= 0 {
		panic("limit must > 0")
	}
	size := (limit + 7) &^ 7
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &Segment{
		base:  unsafe.Pointer(&data[0]),
		limit: uint64(len(data)),
		unmap: func() error { return unix.Munmap(data) },
	}, nil
}
