// Package dstring implements a growable, length-tracked, NUL-terminated
// byte string and the bounds-checked operations on it.
//
// A *String is a handle. A nil handle, or one whose storage was released
// with Free, is uninitialized, and every operation on it reports
// Uninitialized instead of touching memory. Operations that fail leave the
// string exactly as it was before the call.
//
// A String has no internal locking. Concurrent use of distinct strings is
// safe; concurrent mutation of the same string needs external
// synchronization.
package dstring

// DefaultSize is the capacity New allocates.
const DefaultSize = 20

// String is a growable byte string. The content never contains a NUL byte
// and is always followed by one inside the buffer, so that
// Len()+1 <= Cap() holds for every live String.
type String struct {
	buf growbuf
	n   int // offset of the terminator
}

// New allocates a String with DefaultSize bytes of capacity.
func New() (*String, error) {
	return NewWith(DefaultAllocator, DefaultSize)
}

// NewSize allocates a String with n bytes of capacity. A size of 0 yields
// the uninitialized handle and no error.
func NewSize(n int) (*String, error) {
	return NewWith(DefaultAllocator, n)
}

// NewWith is NewSize drawing storage from a. A nil a means
// DefaultAllocator.
func NewWith(a Allocator, n int) (*String, error) {
	if n < 0 {
		return nil, InvalidBufLen
	}
	if n == 0 {
		return nil, nil
	}
	s := &String{}
	if err := s.buf.init(a, n); err != nil {
		return nil, err
	}
	return s, nil
}

// FromString allocates a String just large enough to hold str. Content
// after the first NUL in str is dropped.
func FromString(str string) (*String, error) {
	p := cstring(str)
	s, err := NewSize(len(p) + 1)
	if err != nil {
		return nil, err
	}
	copy(s.buf.data, p)
	s.n = len(p)
	s.buf.data[s.n] = 0
	return s, nil
}

// Realloc resizes the String behind *sp to n bytes. An uninitialized
// handle is allocated with DefaultAllocator; n == 0 frees the String and
// sets *sp to nil. If growth fails, the String is left unchanged.
func Realloc(sp **String, n int) error {
	if sp == nil {
		return InvalidArgument
	}
	if n < 0 {
		return InvalidBufLen
	}
	if n == 0 {
		return Free(sp)
	}
	s := *sp
	if s == nil {
		ns, err := NewSize(n)
		if err != nil {
			return err
		}
		*sp = ns
		return nil
	}
	return s.Resize(n)
}

// Free releases the String behind *sp and sets *sp to nil. Other copies of
// the handle observe Uninitialized until one of them is given storage again
// with Resize.
func Free(sp **String) error {
	if sp == nil || !(*sp).live() {
		return Uninitialized
	}
	s := *sp
	s.buf.release()
	s.n = 0
	*sp = nil
	return nil
}

// Resize grows or shrinks the capacity to n bytes. A released String is
// allocated again from its previous allocator. Shrinking below the content
// truncates it to n-1 bytes; n == 0 releases the storage.
func (s *String) Resize(n int) error {
	if s == nil {
		return Uninitialized
	}
	if n < 0 {
		return InvalidBufLen
	}
	if !s.buf.live() {
		if n == 0 {
			return nil
		}
		s.n = 0
		return s.buf.init(s.buf.alloc, n)
	}
	if n == 0 {
		s.buf.release()
		s.n = 0
		return nil
	}
	if err := s.buf.resize(n); err != nil {
		return err
	}
	if s.n > n-1 {
		s.n = n - 1
	}
	return nil
}

func (s *String) live() bool { return s != nil && s.buf.live() }

// Live reports whether s is an initialized handle.
func (s *String) Live() bool { return s.live() }

// Len returns the content length. It is 0 both for an empty string and
// for an uninitialized one; the error tells them apart.
func (s *String) Len() (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	return s.n, nil
}

// Cap returns the bytes allocated, terminator included. Like Len, 0 comes
// with an Uninitialized error for a dead handle.
func (s *String) Cap() (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	return len(s.buf.data), nil
}

// View returns the content, without the terminator. The slice aliases the
// String and is only valid until the next mutating call; it must not be
// written to.
func (s *String) View() ([]byte, error) {
	if !s.live() {
		return nil, Uninitialized
	}
	return s.buf.data[:s.n:s.n], nil
}

// Allocator returns the allocator backing s, or nil for an uninitialized
// handle.
func (s *String) Allocator() Allocator {
	if !s.live() {
		return nil
	}
	return s.buf.alloc
}

// String returns a copy of the content, or "" when uninitialized.
func (s *String) String() string {
	if !s.live() {
		return ""
	}
	return string(s.buf.data[:s.n])
}

// BoundsCheck reports whether index addresses a content byte. The
// terminator's own offset is out of bounds.
func (s *String) BoundsCheck(index int) error {
	if !s.live() {
		return Uninitialized
	}
	if index < 0 {
		return InvalidArgument
	}
	if index >= s.n {
		return OutOfBounds
	}
	return nil
}

// view is the content of a live string.
func (s *String) view() []byte { return s.buf.data[:s.n] }

// makeRoom ensures content of the given size fits with its terminator. When
// it does not, capacity grows to the current capacity plus the bytes about
// to be written plus one, before anything is written.
func (s *String) makeRoom(size, write int) error {
	if size < len(s.buf.data) {
		return nil
	}
	c, ok := addSize(len(s.buf.data), write)
	if !ok {
		return NoMem
	}
	c, ok = addSize(c, 1)
	if !ok || c <= size {
		return NoMem
	}
	return s.buf.resize(c)
}

// detach copies p when it aliases the storage of s, so a reallocation or
// a shift cannot pull the source out from under the write.
func (s *String) detach(p []byte) []byte {
	if overlaps(s.buf.data, p) {
		return append([]byte(nil), p...)
	}
	return p
}

// terminate seals the content at length n.
func (s *String) terminate(n int) {
	s.n = n
	s.buf.data[n] = 0
}
