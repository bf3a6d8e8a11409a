package dstring

import (
	"errors"
	"io"
)

// Status is the outcome of a dstring operation. Every failure returned by
// this package carries one, and a nil error means Success.
type Status int

const (
	Success         Status = 0
	NoMem           Status = -1  // allocation or growth failed
	InvalidBufLen   Status = -2  // nonsensical buffer size requested
	Uninitialized   Status = -3  // operation on a nil or released String
	UnopenedFile    Status = -4  // nil stream
	EOF             Status = -5  // end of stream
	FileError       Status = -6  // stream fault other than end of stream
	OutOfBounds     Status = -7  // index outside the string
	InvalidArgument Status = -8  // NUL where forbidden, negative size, empty pattern
	NullCPtr        Status = -9  // nil external buffer
	EmptyString     Status = -10 // operation needs a non-empty string
	Unknown         Status = -11
)

var messages = [...]string{
	"success",
	"out of memory",
	"invalid buffer length",
	"string uninitialized",
	"unopened file",
	"eof has been reached",
	"error reading file",
	"out of bounds",
	"invalid argument",
	"null external pointer",
	"empty string",
}

// ErrorMessage maps a status code to a fixed message. Codes outside the
// enumeration map to "unknown error".
func ErrorMessage(code Status) string {
	i := -int(code)
	if i < 0 || i >= len(messages) {
		return "unknown error"
	}
	return messages[i]
}

func (s Status) Error() string { return ErrorMessage(s) }

func (s Status) String() string { return ErrorMessage(s) }

// StatusOf recovers the status carried by err. A nil error is Success, a
// bare io.EOF is EOF, and anything else foreign is Unknown.
func StatusOf(err error) Status {
	if err == nil {
		return Success
	}
	var st Status
	if errors.As(err, &st) {
		return st
	}
	if errors.Is(err, io.EOF) {
		return EOF
	}
	return Unknown
}

// Slot holds the status of the most recent operation made through it, for
// callers that prefer to call first and inspect afterwards. A Slot belongs
// to one goroutine; give each concurrent caller its own.
type Slot struct {
	last Status
}

// Set records the status of err and returns err unchanged, so a call can
// be wrapped in place: slot.Set(dstring.Free(&s)).
func (sl *Slot) Set(err error) error {
	sl.last = StatusOf(err)
	return err
}

// Status returns the last recorded status.
func (sl *Slot) Status() Status { return sl.last }

// Message returns the message for the last recorded status.
func (sl *Slot) Message() string { return ErrorMessage(sl.last) }
