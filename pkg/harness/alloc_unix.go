//go:build unix

package harness

import "dstring-go/pkg/dstring"

func mmapAllocator() (dstring.Allocator, error) {
	return dstring.MmapAllocator{}, nil
}
