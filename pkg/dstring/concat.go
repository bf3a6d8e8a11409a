package dstring

import "bytes"

// Concat appends src to s and returns the number of bytes appended. An
// empty src appends nothing and succeeds.
func (s *String) Concat(src *String) (int, error) {
	if !s.live() || !src.live() {
		return 0, Uninitialized
	}
	return s.appendBytes(src.view())
}

// ConcatN appends at most n bytes of src to s.
func (s *String) ConcatN(src *String, n int) (int, error) {
	if !s.live() || !src.live() {
		return 0, Uninitialized
	}
	if n < 0 {
		return 0, InvalidArgument
	}
	return s.appendBytes(clip(src.view(), n))
}

// ConcatBytes appends the NUL-terminated contents of p. A nil p is a null
// external pointer.
func (s *String) ConcatBytes(p []byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if p == nil {
		return 0, NullCPtr
	}
	return s.appendBytes(p[:cstrlen(p)])
}

// ConcatBytesN appends at most n bytes of the NUL-terminated contents of p.
func (s *String) ConcatBytesN(p []byte, n int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if p == nil {
		return 0, NullCPtr
	}
	if n < 0 {
		return 0, InvalidArgument
	}
	return s.appendBytes(clip(p[:cstrlen(p)], n))
}

// ConcatString appends str up to its first NUL.
func (s *String) ConcatString(str string) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	return s.appendBytes(cstring(str))
}

func (s *String) appendBytes(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	p = s.detach(p)
	if err := s.makeRoom(s.n+len(p), len(p)); err != nil {
		return 0, err
	}
	copy(s.buf.data[s.n:], p)
	s.terminate(s.n + len(p))
	return len(p), nil
}

// Copy replaces the content of s with that of src, growing s as needed,
// and returns the number of bytes copied. Copying an empty src empties s
// without touching its capacity.
func (s *String) Copy(src *String) (int, error) {
	if !s.live() || !src.live() {
		return 0, Uninitialized
	}
	return s.setBytes(src.view())
}

// CopyN copies at most n bytes of src into s, then pads with NULs up to
// offset n as strncpy does. n == 0 leaves s untouched.
func (s *String) CopyN(src *String, n int) (int, error) {
	if !s.live() || !src.live() {
		return 0, Uninitialized
	}
	if n < 0 {
		return 0, InvalidArgument
	}
	if n == 0 {
		return 0, nil
	}
	p := clip(src.view(), n)
	if len(p) == 0 {
		return s.setBytes(nil)
	}
	p = s.detach(p)
	if err := s.makeRoom(n, n); err != nil {
		return 0, err
	}
	d := s.buf.data
	copy(d, p)
	clear(d[len(p) : n+1])
	s.n = len(p)
	return len(p), nil
}

// SetBytes replaces the content of s with the NUL-terminated contents of
// p. A nil p is a null external pointer.
func (s *String) SetBytes(p []byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if p == nil {
		return 0, NullCPtr
	}
	return s.setBytes(p[:cstrlen(p)])
}

// SetString replaces the content of s with str up to its first NUL.
func (s *String) SetString(str string) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	return s.setBytes(cstring(str))
}

func (s *String) setBytes(p []byte) (int, error) {
	if len(p) == 0 {
		s.terminate(0)
		return 0, nil
	}
	p = s.detach(p)
	if err := s.makeRoom(len(p), len(p)); err != nil {
		return 0, err
	}
	copy(s.buf.data, p)
	s.terminate(len(p))
	return len(p), nil
}

// CopyTo writes the content into dst as a NUL-terminated string, keeping
// at most len(dst)-1 content bytes, and returns how many it kept. A
// zero-length dst receives nothing.
func (s *String) CopyTo(dst []byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if dst == nil {
		return 0, NullCPtr
	}
	if len(dst) == 0 {
		return 0, nil
	}
	k := copy(dst[:len(dst)-1], s.view())
	dst[k] = 0
	return k, nil
}

// Compare orders a and b as strcmp would.
func Compare(a, b *String) (int, error) {
	if !a.live() || !b.live() {
		return 0, Uninitialized
	}
	return bytes.Compare(a.view(), b.view()), nil
}

// CompareBytes orders s against the NUL-terminated contents of p.
func (s *String) CompareBytes(p []byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if p == nil {
		return 0, NullCPtr
	}
	return bytes.Compare(s.view(), p[:cstrlen(p)]), nil
}

// Write appends p, making String an io.Writer. Writing a NUL is refused:
// the bytes before it are appended and InvalidArgument is returned.
func (s *String) Write(p []byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	k := cstrlen(p)
	n, err := s.appendBytes(p[:k])
	if err != nil {
		return n, err
	}
	if k < len(p) {
		return n, InvalidArgument
	}
	return n, nil
}

// WriteString is Write for a string argument.
func (s *String) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// WriteByte appends c.
func (s *String) WriteByte(c byte) error {
	if !s.live() {
		return Uninitialized
	}
	if c == 0 {
		return InvalidArgument
	}
	_, err := s.appendBytes([]byte{c})
	return err
}

func clip(p []byte, n int) []byte {
	if n < len(p) {
		return p[:n]
	}
	return p
}
