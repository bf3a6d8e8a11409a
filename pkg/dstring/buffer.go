package dstring

import (
	"bytes"
	"fmt"
	"unsafe"
)

// growbuf is the owned, contiguous storage behind a String. A nil data
// slice is the released state; a live buffer always has len(data) >= 1.
type growbuf struct {
	data  []byte
	alloc Allocator
}

func (b *growbuf) live() bool { return b.data != nil }

// init allocates n bytes and leaves an empty, terminated string in them.
func (b *growbuf) init(a Allocator, n int) error {
	if a == nil {
		a = DefaultAllocator
	}
	data, err := a.Alloc(n)
	if err != nil {
		return allocErr(err)
	}
	if len(data) != n {
		a.Free(data)
		return NoMem
	}
	data[0] = 0
	b.data, b.alloc = data, a
	return nil
}

// resize moves the buffer to n bytes. On failure, data and capacity are
// exactly as they were.
func (b *growbuf) resize(n int) error {
	if n == len(b.data) {
		return nil
	}
	data, err := b.alloc.Realloc(b.data, n)
	if err != nil {
		return allocErr(err)
	}
	// a shrunk buffer must still hold a terminator inside its bounds
	data[n-1] = 0
	b.data = data
	return nil
}

func (b *growbuf) release() {
	if b.data == nil {
		return
	}
	b.alloc.Free(b.data)
	b.data = nil
}

// allocErr normalises allocator failures so StatusOf always sees a Status.
func allocErr(err error) error {
	if StatusOf(err) == Unknown {
		return fmt.Errorf("%w: %w", NoMem, err)
	}
	return err
}

// overlaps reports whether b shares any memory with a.
func overlaps(a, b []byte) bool {
	if cap(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(cap(a))
}

// cstrlen is the length of p as a NUL-terminated string: the offset of the
// first NUL, or len(p) when there is none.
func cstrlen(p []byte) int {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return i
	}
	return len(p)
}

func cstring(str string) []byte {
	for i := 0; i < len(str); i++ {
		if str[i] == 0 {
			return []byte(str[:i])
		}
	}
	return []byte(str)
}
