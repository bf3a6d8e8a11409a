//go:build unix

package dstring

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// MmapAllocator backs strings with anonymous private mappings, keeping
// large buffers out of the Go heap. Growth maps a fresh region, copies the
// old one across and unmaps it, so a failed growth leaves the old mapping
// in place.
type MmapAllocator struct{}

var unmapFailures atomic.Int64

// UnmapFailures counts regions MmapAllocator.Free could not unmap. Each
// one is a leaked mapping.
func UnmapFailures() int64 { return unmapFailures.Load() }

func mmapRegion(n int) ([]byte, error) {
	if n <= 0 {
		return nil, InvalidBufLen
	}
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", NoMem, n, err)
	}
	return b, nil
}

func (MmapAllocator) Alloc(n int) ([]byte, error) {
	return mmapRegion(n)
}

func (MmapAllocator) Realloc(b []byte, n int) ([]byte, error) {
	nb, err := mmapRegion(n)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	if len(b) > 0 {
		if err := unix.Munmap(b); err != nil {
			// keep b as the live region and drop the new one
			unix.Munmap(nb)
			return nil, fmt.Errorf("%w: munmap %d bytes: %w", NoMem, len(b), err)
		}
	}
	return nb, nil
}

func (MmapAllocator) Free(b []byte) {
	if len(b) > 0 {
		if err := unix.Munmap(b); err != nil {
			unmapFailures.Add(1)
		}
	}
}
