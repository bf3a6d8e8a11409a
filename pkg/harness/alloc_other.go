//go:build !unix

package harness

import (
	"fmt"

	"dstring-go/pkg/dstring"
)

func mmapAllocator() (dstring.Allocator, error) {
	return nil, fmt.Errorf("%w: the mmap allocator needs a unix system", ErrBadConfig)
}
