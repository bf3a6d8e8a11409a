// Package util provides small helpers shared by the dstring tools.
package util

import (
	"fmt"

	"dstring-go/pkg/dstring"
)

// StrBuf is a write-only text accumulator over a dstring.String. Writes
// never fail from the caller's point of view; the first failure is kept
// and reported by Err, and later writes are dropped.
type StrBuf struct {
	s   *dstring.String
	err error
}

// NewStrBuf creates and returns a new, empty StrBuf.
func NewStrBuf() *StrBuf {
	s, err := dstring.New()
	return &StrBuf{s: s, err: err}
}

// NewStrBufWith is NewStrBuf drawing storage from a.
func NewStrBufWith(a dstring.Allocator) *StrBuf {
	s, err := dstring.NewWith(a, dstring.DefaultSize)
	return &StrBuf{s: s, err: err}
}

func (sb *StrBuf) write(str string) {
	if sb.err != nil {
		return
	}
	_, sb.err = sb.s.WriteString(str)
}

// Write appends the given string to the buffer.
func (sb *StrBuf) Write(s string) {
	sb.write(s)
}

// WriteLine appends the given string followed by a newline.
func (sb *StrBuf) WriteLine(s string) {
	sb.write(s)
	sb.write("\n")
}

// Writef appends a formatted string to the buffer.
func (sb *StrBuf) Writef(format string, args ...interface{}) {
	sb.write(fmt.Sprintf(format, args...))
}

// Err returns the first write failure, if any.
func (sb *StrBuf) Err() error { return sb.err }

// Len returns the bytes accumulated so far.
func (sb *StrBuf) Len() int {
	n, _ := sb.s.Len()
	return n
}

// String returns the accumulated string.
func (sb *StrBuf) String() string {
	return sb.s.String()
}

// Reset clears the buffer and any recorded failure, keeping its capacity.
func (sb *StrBuf) Reset() {
	if !sb.s.Live() {
		sb.s, sb.err = dstring.New()
		return
	}
	sb.s.Truncate(0)
	sb.err = nil
}

// Free releases the storage. The buffer must not be used afterwards.
func (sb *StrBuf) Free() {
	dstring.Free(&sb.s)
}
