package textfmt

import (
	"testing"

	"dstring-go/pkg/dstring"
)

func newString(t *testing.T, str string) *dstring.String {
	t.Helper()
	s, err := dstring.FromString(str)
	if err != nil {
		t.Fatalf("FromString(%q) failed: %v", str, err)
	}
	return s
}

func TestSprintfAndCatf(t *testing.T) {
	s := newString(t, "old")
	n, err := Sprintf(s, "%s=%d", "answer", 42)
	if err != nil || n != 9 || s.String() != "answer=42" {
		t.Fatalf("Sprintf = %d, %v, %q", n, err, s.String())
	}
	n, err = Catf(s, " (%.1f%%)", 99.5)
	if err != nil || s.String() != "answer=42 (99.5%)" {
		t.Fatalf("Catf = %d, %v, %q", n, err, s.String())
	}
	if _, err := Sprintf(s, "a%cb", 0); err != nil || s.String() != "a" {
		t.Errorf("formatted NUL should cut the output, got %q, %v", s.String(), err)
	}
	var dead *dstring.String
	if _, err := Catf(dead, "x"); dstring.StatusOf(err) != dstring.Uninitialized {
		t.Errorf("Catf on dead handle = %v", err)
	}
}

func TestPad(t *testing.T) {
	s := newString(t, "7")
	if n, err := PadLeft(s, 2, '0'); err != nil || n != 3 || s.String() != "007" {
		t.Fatalf("PadLeft = %d, %v, %q", n, err, s.String())
	}
	if n, err := PadRight(s, 3, '.'); err != nil || n != 6 || s.String() != "007..." {
		t.Fatalf("PadRight = %d, %v, %q", n, err, s.String())
	}
	if n, err := PadLeft(s, 0, 0); err != nil || n != 6 {
		t.Errorf("PadLeft(0) should be a no-op, got %d, %v", n, err)
	}
	if n, err := PadRight(s, 2, 0); dstring.StatusOf(err) != dstring.InvalidArgument || n != 6 {
		t.Errorf("NUL padding = %d, %v", n, err)
	}
}

func TestPadFailureUntouched(t *testing.T) {
	s, _ := dstring.NewWith(dstring.Limit(nil, 6), 4)
	s.SetString("abc")
	if n, err := PadLeft(s, 4, '-'); dstring.StatusOf(err) != dstring.NoMem || n != 3 {
		t.Fatalf("PadLeft = %d, %v; want NoMem", n, err)
	}
	if s.String() != "abc" {
		t.Errorf("content = %q", s.String())
	}
}

func TestFill(t *testing.T) {
	s := newString(t, "abcdef")
	if n, err := Fill(s, 1, 3, '*'); err != nil || n != 6 || s.String() != "a***ef" {
		t.Fatalf("Fill inside = %d, %v, %q", n, err, s.String())
	}
	if n, err := Fill(s, 4, 4, '#'); err != nil || n != 8 || s.String() != "a***####" {
		t.Fatalf("Fill past end = %d, %v, %q", n, err, s.String())
	}
	if _, err := Fill(s, 9, 1, '#'); dstring.StatusOf(err) != dstring.OutOfBounds {
		t.Errorf("Fill past length = %v", err)
	}
	if _, err := Fill(s, 0, 1, 0); dstring.StatusOf(err) != dstring.InvalidArgument {
		t.Errorf("Fill with NUL = %v", err)
	}
}

func TestCase(t *testing.T) {
	s := newString(t, "Hello, World 42")
	if err := ToUpper(s, 7); err != nil || s.String() != "Hello, WORLD 42" {
		t.Fatalf("ToUpper = %v, %q", err, s.String())
	}
	if err := ToLower(s, 0); err != nil || s.String() != "hello, world 42" {
		t.Fatalf("ToLower = %v, %q", err, s.String())
	}
	if err := ToUpperN(s, 0, 5); err != nil || s.String() != "HELLO, world 42" {
		t.Fatalf("ToUpperN = %v, %q", err, s.String())
	}
	if err := ToLowerN(s, 1, 100); err != nil || s.String() != "Hello, world 42" {
		t.Fatalf("ToLowerN clamp = %v, %q", err, s.String())
	}
	if err := ToUpper(s, 15); dstring.StatusOf(err) != dstring.OutOfBounds {
		t.Errorf("ToUpper at length = %v", err)
	}
	if err := ToLowerN(s, 0, -1); dstring.StatusOf(err) != dstring.InvalidArgument {
		t.Errorf("negative count = %v", err)
	}
}

func TestJustify(t *testing.T) {
	s := newString(t, "  ab  \ncdef\n   x")
	if err := Center(s, 6); err != nil {
		t.Fatalf("Center failed: %v", err)
	}
	if want := "  ab  \n cdef \n  x   "; s.String() != want {
		t.Errorf("Center = %q, want %q", s.String(), want)
	}
	if err := Right(s, 5); err != nil {
		t.Fatalf("Right failed: %v", err)
	}
	if want := "   ab\n cdef\n    x"; s.String() != want {
		t.Errorf("Right = %q, want %q", s.String(), want)
	}
	if err := Left(s, 4); err != nil {
		t.Fatalf("Left failed: %v", err)
	}
	if want := "ab  \ncdef\nx   "; s.String() != want {
		t.Errorf("Left = %q, want %q", s.String(), want)
	}
}

func TestJustifyKeepsWideLines(t *testing.T) {
	s := newString(t, "too wide for this\nok")
	if err := Right(s, 4); err != nil {
		t.Fatalf("Right failed: %v", err)
	}
	if want := "too wide for this\n  ok"; s.String() != want {
		t.Errorf("Right = %q, want %q", s.String(), want)
	}
}
