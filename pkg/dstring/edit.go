package dstring

import (
	"bytes"

	"dstring-go/internal/fn"
)

// Index-based operations. Indices are 0-based offsets into the content;
// negative values are InvalidArgument. Every operation validates the handle
// first and the bounds second, and fails before writing a byte.
//
// Operations returning a length report the current length, unchanged, when
// they fail.

// InsertByte inserts c before index and returns the new length. index may
// equal the length, which appends.
func (s *String) InsertByte(index int, c byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if err := s.insertBounds(index); err != nil {
		return s.n, err
	}
	if c == 0 {
		return s.n, InvalidArgument
	}
	return s.insertAt(index, []byte{c})
}

// Insert inserts the content of src before index and returns the new
// length.
//
// The caller must make sure src holds no record delimiter that would break
// later line-oriented reads of s; nothing here checks for one.
func (s *String) Insert(src *String, index int) (int, error) {
	if !s.live() || !src.live() {
		return s.lenOrZero(), Uninitialized
	}
	if err := s.insertBounds(index); err != nil {
		return s.n, err
	}
	return s.insertAt(index, src.view())
}

// InsertN inserts at most n bytes of src before index.
func (s *String) InsertN(src *String, index, n int) (int, error) {
	if !s.live() || !src.live() {
		return s.lenOrZero(), Uninitialized
	}
	if err := s.insertBounds(index); err != nil {
		return s.n, err
	}
	if n < 0 {
		return s.n, InvalidArgument
	}
	return s.insertAt(index, clip(src.view(), n))
}

// InsertBytes inserts the NUL-terminated contents of p before index.
func (s *String) InsertBytes(p []byte, index int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if err := s.insertBounds(index); err != nil {
		return s.n, err
	}
	if p == nil {
		return s.n, NullCPtr
	}
	return s.insertAt(index, p[:cstrlen(p)])
}

// InsertBytesN inserts at most n bytes of the NUL-terminated contents of p.
func (s *String) InsertBytesN(p []byte, index, n int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if err := s.insertBounds(index); err != nil {
		return s.n, err
	}
	if p == nil {
		return s.n, NullCPtr
	}
	if n < 0 {
		return s.n, InvalidArgument
	}
	return s.insertAt(index, clip(p[:cstrlen(p)], n))
}

// InsertString inserts str, up to its first NUL, before index.
func (s *String) InsertString(str string, index int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if err := s.insertBounds(index); err != nil {
		return s.n, err
	}
	return s.insertAt(index, cstring(str))
}

func (s *String) insertBounds(index int) error {
	if index < 0 {
		return InvalidArgument
	}
	if index > s.n {
		return OutOfBounds
	}
	return nil
}

// insertAt opens a gap of len(p) bytes at index and fills it with p. The
// tail moves together with its terminator.
func (s *String) insertAt(index int, p []byte) (int, error) {
	if len(p) == 0 {
		return s.n, nil
	}
	p = s.detach(p)
	if err := s.makeRoom(s.n+len(p), len(p)); err != nil {
		return s.n, err
	}
	d := s.buf.data
	copy(d[index+len(p):], d[index:s.n+1])
	copy(d[index:], p)
	s.n += len(p)
	return s.n, nil
}

// DeleteAt removes the byte at index and returns it. The terminator's own
// offset is out of bounds.
func (s *String) DeleteAt(index int) (byte, error) {
	if err := s.BoundsCheck(index); err != nil {
		return 0, err
	}
	d := s.buf.data
	c := d[index]
	copy(d[index:], d[index+1:s.n+1])
	s.n--
	return c, nil
}

// DeleteRange removes n bytes starting at index and returns the new
// length. n reaching past the end deletes through the end.
func (s *String) DeleteRange(index, n int) (int, error) {
	if err := s.BoundsCheck(index); err != nil {
		return s.lenOrZero(), err
	}
	if n < 0 {
		return s.n, InvalidArgument
	}
	if n == 0 {
		return s.n, nil
	}
	n = fn.Clamp(n, 0, s.n-index)
	d := s.buf.data
	copy(d[index:], d[index+n:s.n+1])
	s.n -= n
	return s.n, nil
}

// Truncate cuts the content down to size bytes and returns the new length.
// A size at or beyond the length changes nothing.
func (s *String) Truncate(size int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if size < 0 {
		return s.n, InvalidArgument
	}
	if size < s.n {
		s.terminate(size)
	}
	return s.n, nil
}

// TrimLeft drops the first n bytes and returns the new length. n at or
// beyond the length empties the string.
func (s *String) TrimLeft(n int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if n < 0 {
		return s.n, InvalidArgument
	}
	switch {
	case n == 0:
	case n >= s.n:
		s.terminate(0)
	default:
		d := s.buf.data
		copy(d, d[n:s.n+1])
		s.n -= n
	}
	return s.n, nil
}

// Exchange overwrites the byte at index with c and returns the byte it
// replaced.
func (s *String) Exchange(index int, c byte) (byte, error) {
	if err := s.BoundsCheck(index); err != nil {
		return 0, err
	}
	if c == 0 {
		return 0, InvalidArgument
	}
	old := s.buf.data[index]
	s.buf.data[index] = c
	return old, nil
}

// At returns the byte at index.
func (s *String) At(index int) (byte, error) {
	if err := s.BoundsCheck(index); err != nil {
		return 0, err
	}
	return s.buf.data[index], nil
}

// PopBack removes and returns the last byte, treating s as a stack.
func (s *String) PopBack() (byte, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if s.n == 0 {
		return 0, EmptyString
	}
	c := s.buf.data[s.n-1]
	s.terminate(s.n - 1)
	return c, nil
}

// PopFront removes and returns the first byte, treating s as a queue.
func (s *String) PopFront() (byte, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if s.n == 0 {
		return 0, EmptyString
	}
	d := s.buf.data
	c := d[0]
	copy(d, d[1:s.n+1])
	s.n--
	return c, nil
}

// ReplaceByte replaces every oldc with newc and returns how many it
// replaced. Neither may be NUL.
func (s *String) ReplaceByte(oldc, newc byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if oldc == 0 || newc == 0 {
		return 0, InvalidArgument
	}
	count := 0
	d := s.view()
	for i := range d {
		if d[i] == oldc {
			d[i] = newc
			count++
		}
	}
	return count, nil
}

// Replace substitutes every non-overlapping occurrence of olds, scanning
// left to right, with news and returns the number of substitutions. An
// empty or nil news deletes the occurrences; an empty olds is
// InvalidArgument. Both are read up to their first NUL.
func (s *String) Replace(olds, news []byte) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if olds == nil {
		return 0, NullCPtr
	}
	olds = olds[:cstrlen(olds)]
	if len(olds) == 0 {
		return 0, InvalidArgument
	}
	news = news[:cstrlen(news)]
	return s.replace(s.detach(olds), s.detach(news))
}

// ReplaceString is Replace for string arguments.
func (s *String) ReplaceString(olds, news string) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	o := cstring(olds)
	if len(o) == 0 {
		return 0, InvalidArgument
	}
	return s.replace(o, cstring(news))
}

// Remove deletes every occurrence of sub and returns how many it removed.
func (s *String) Remove(sub []byte) (int, error) {
	return s.Replace(sub, nil)
}

// RemoveString is Remove for a string argument.
func (s *String) RemoveString(sub string) (int, error) {
	return s.ReplaceString(sub, "")
}

func (s *String) replace(olds, news []byte) (int, error) {
	var matches []int
	d := s.view()
	for off := 0; off <= len(d)-len(olds); {
		i := bytes.Index(d[off:], olds)
		if i < 0 {
			break
		}
		matches = append(matches, off+i)
		off += i + len(olds)
	}
	if len(matches) == 0 {
		return 0, nil
	}

	delta := len(news) - len(olds)
	size := s.n + len(matches)*delta
	if delta > 0 {
		if err := s.makeRoom(size, len(matches)*delta); err != nil {
			return 0, err
		}
	}

	d = s.buf.data
	if delta <= 0 {
		// compact forward: the write cursor never passes the read cursor
		r, w := 0, 0
		for _, m := range matches {
			w += copy(d[w:], d[r:m])
			w += copy(d[w:], news)
			r = m + len(olds)
		}
		w += copy(d[w:], d[r:s.n])
		s.terminate(w)
		return len(matches), nil
	}

	// expand backward from the new end so no unread byte is overwritten
	r, w := s.n, size
	d[w] = 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		tail := d[m+len(olds) : r]
		w -= len(tail)
		copy(d[w:], tail)
		w -= len(news)
		copy(d[w:], news)
		r = m
	}
	s.n = size
	return len(matches), nil
}

func (s *String) lenOrZero() int {
	if !s.live() {
		return 0
	}
	return s.n
}
