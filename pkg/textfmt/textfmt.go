// Package textfmt formats and justifies dstring contents. It only uses the
// public dstring API, so every operation inherits its growth policy and
// its promise to leave a string untouched on failure.
package textfmt

import (
	"fmt"
	"strings"

	"dstring-go/pkg/dstring"
)

// Sprintf replaces the content of s with the formatted text and returns
// the new length. Output past the first NUL is dropped.
func Sprintf(s *dstring.String, format string, args ...interface{}) (int, error) {
	if !s.Live() {
		return 0, dstring.Uninitialized
	}
	return s.SetString(fmt.Sprintf(format, args...))
}

// Catf appends the formatted text to s and returns the bytes appended.
func Catf(s *dstring.String, format string, args ...interface{}) (int, error) {
	if !s.Live() {
		return 0, dstring.Uninitialized
	}
	return s.ConcatString(fmt.Sprintf(format, args...))
}

func length(s *dstring.String) int {
	n, _ := s.Len()
	return n
}

// PadLeft prepends n copies of c and returns the new length.
func PadLeft(s *dstring.String, n int, c byte) (int, error) {
	if err := padArgs(s, n, c); err != nil || n == 0 {
		return length(s), err
	}
	return s.InsertString(strings.Repeat(string(c), n), 0)
}

// PadRight appends n copies of c and returns the new length.
func PadRight(s *dstring.String, n int, c byte) (int, error) {
	if err := padArgs(s, n, c); err != nil || n == 0 {
		return length(s), err
	}
	if _, err := s.ConcatString(strings.Repeat(string(c), n)); err != nil {
		return length(s), err
	}
	return length(s), nil
}

func padArgs(s *dstring.String, n int, c byte) error {
	if !s.Live() {
		return dstring.Uninitialized
	}
	if n < 0 || (n > 0 && c == 0) {
		return dstring.InvalidArgument
	}
	return nil
}

// Fill overwrites n bytes starting at index with c, extending the string
// when the run goes past its end. index may equal the length.
func Fill(s *dstring.String, index, n int, c byte) (int, error) {
	if !s.Live() {
		return 0, dstring.Uninitialized
	}
	size := length(s)
	if index < 0 || n < 0 {
		return size, dstring.InvalidArgument
	}
	if index > size {
		return size, dstring.OutOfBounds
	}
	if c == 0 {
		return size, dstring.InvalidArgument
	}
	// extend first: it is the only step that can fail
	if over := index + n - size; over > 0 {
		if _, err := s.ConcatString(strings.Repeat(string(c), over)); err != nil {
			return size, err
		}
	}
	for i := index; i < index+n && i < size; i++ {
		if _, err := s.Exchange(i, c); err != nil {
			return length(s), err
		}
	}
	return length(s), nil
}

// ToUpper converts the ASCII letters from index to the end to upper case.
func ToUpper(s *dstring.String, index int) error {
	return mapCase(s, index, -1, upper)
}

// ToLower converts the ASCII letters from index to the end to lower case.
func ToLower(s *dstring.String, index int) error {
	return mapCase(s, index, -1, lower)
}

// ToUpperN is ToUpper limited to n bytes. n past the end converts all of
// them.
func ToUpperN(s *dstring.String, index, n int) error {
	if n < 0 {
		return argErr(s)
	}
	return mapCase(s, index, n, upper)
}

// ToLowerN is ToLower limited to n bytes.
func ToLowerN(s *dstring.String, index, n int) error {
	if n < 0 {
		return argErr(s)
	}
	return mapCase(s, index, n, lower)
}

func argErr(s *dstring.String) error {
	if !s.Live() {
		return dstring.Uninitialized
	}
	return dstring.InvalidArgument
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func mapCase(s *dstring.String, index, n int, conv func(byte) byte) error {
	if err := s.BoundsCheck(index); err != nil {
		return err
	}
	end := length(s)
	if n >= 0 && n < end-index {
		end = index + n
	}
	for i := index; i < end; i++ {
		c, _ := s.At(i)
		if m := conv(c); m != c {
			if _, err := s.Exchange(i, m); err != nil {
				return err
			}
		}
	}
	return nil
}
