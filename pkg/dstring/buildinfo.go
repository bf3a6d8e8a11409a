package dstring

import (
	"fmt"
	"runtime"
)

// Version of the library.
const Version = "1.0.0"

// BuildInfo fills s with a few lines describing this build of the
// library. On failure the content of s is unspecified.
func BuildInfo(s *String) error {
	if !s.live() {
		return Uninitialized
	}
	lines := []string{
		fmt.Sprintf("dstring-go %s", Version),
		fmt.Sprintf("go: %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("allocator: %T", s.buf.alloc),
		fmt.Sprintf("default size: %d", DefaultSize),
	}
	s.terminate(0)
	for i, l := range lines {
		if i > 0 {
			if err := s.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := s.ConcatString(l); err != nil {
			return err
		}
	}
	return nil
}
