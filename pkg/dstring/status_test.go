package dstring

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	want := map[Status]string{
		Success:         "success",
		NoMem:           "out of memory",
		InvalidBufLen:   "invalid buffer length",
		Uninitialized:   "string uninitialized",
		UnopenedFile:    "unopened file",
		EOF:             "eof has been reached",
		FileError:       "error reading file",
		OutOfBounds:     "out of bounds",
		InvalidArgument: "invalid argument",
		NullCPtr:        "null external pointer",
		EmptyString:     "empty string",
	}
	for code, msg := range want {
		if got := ErrorMessage(code); got != msg {
			t.Errorf("ErrorMessage(%d) = %q, want %q", code, got, msg)
		}
	}
	for _, code := range []Status{Unknown, 1, 42, -99} {
		if got := ErrorMessage(code); got != "unknown error" {
			t.Errorf("ErrorMessage(%d) = %q, want unknown error", code, got)
		}
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != Success {
		t.Errorf("nil error should be Success")
	}
	if StatusOf(OutOfBounds) != OutOfBounds {
		t.Errorf("bare status not recovered")
	}
	wrapped := fmt.Errorf("%w: %w", FileError, errors.New("disk on fire"))
	if StatusOf(wrapped) != FileError {
		t.Errorf("wrapped status not recovered, got %v", StatusOf(wrapped))
	}
	if !errors.Is(wrapped, FileError) {
		t.Errorf("errors.Is should match the wrapped status")
	}
	if StatusOf(io.EOF) != EOF {
		t.Errorf("io.EOF should map to EOF")
	}
	if StatusOf(errors.New("foreign")) != Unknown {
		t.Errorf("foreign errors should map to Unknown")
	}
}

func TestSlotIsOverwrittenOnSuccess(t *testing.T) {
	var slot Slot
	var s *String
	if err := slot.Set(Free(&s)); err == nil {
		t.Fatalf("freeing an uninitialized handle should fail")
	}
	if slot.Status() != Uninitialized {
		t.Fatalf("slot = %v, want Uninitialized", slot.Status())
	}

	s, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	slot.Set(s.Resize(40))
	if slot.Status() != Success {
		t.Errorf("a successful call must clear the previous failure, got %v", slot.Status())
	}
	if slot.Message() != "success" {
		t.Errorf("unexpected message %q", slot.Message())
	}
}
