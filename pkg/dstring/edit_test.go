package dstring

import (
	"testing"
)

func TestInsertByteAtLength(t *testing.T) {
	s := mustString(t, "abc")
	n, err := s.InsertByte(3, 'd')
	if err != nil || n != 4 {
		t.Fatalf("InsertByte = %d, %v; want 4", n, err)
	}
	if s.String() != "abcd" {
		t.Errorf("content = %q, want abcd", s.String())
	}
	checkInvariant(t, s)
}

func TestInsertByteBounds(t *testing.T) {
	s := mustString(t, "abc")
	if n, err := s.InsertByte(4, 'x'); StatusOf(err) != OutOfBounds || n != 3 {
		t.Errorf("InsertByte past length = %d, %v", n, err)
	}
	if _, err := s.InsertByte(-1, 'x'); StatusOf(err) != InvalidArgument {
		t.Errorf("negative index = %v", err)
	}
	if _, err := s.InsertByte(0, 0); StatusOf(err) != InvalidArgument {
		t.Errorf("inserting NUL = %v", err)
	}
	var dead *String
	if _, err := dead.InsertByte(10, 0); StatusOf(err) != Uninitialized {
		t.Errorf("handle must be checked before bounds and argument, got %v", err)
	}
	if s.String() != "abc" {
		t.Errorf("failed inserts changed content to %q", s.String())
	}
}

func TestInsert(t *testing.T) {
	s := mustString(t, "held")
	src := mustString(t, "llo wor")
	if n, err := s.Insert(src, 2); err != nil || n != 11 {
		t.Fatalf("Insert = %d, %v", n, err)
	}
	if s.String() != "hello world" {
		t.Errorf("content = %q", s.String())
	}
	if n, err := s.InsertN(src, 0, 3); err != nil || n != 14 {
		t.Fatalf("InsertN = %d, %v", n, err)
	}
	if s.String() != "llohello world" {
		t.Errorf("content = %q", s.String())
	}
	if _, err := s.Insert(s, 3); err != nil {
		t.Fatalf("self Insert failed: %v", err)
	}
	if s.String() != "llollohello worldhello world" {
		t.Errorf("self insert = %q", s.String())
	}
	checkInvariant(t, s)
}

func TestInsertBytes(t *testing.T) {
	s := mustString(t, "ad")
	if n, err := s.InsertBytes([]byte("bc\x00zz"), 1); err != nil || n != 4 {
		t.Fatalf("InsertBytes = %d, %v", n, err)
	}
	if n, err := s.InsertBytesN([]byte("efg"), 4, 2); err != nil || n != 6 {
		t.Fatalf("InsertBytesN = %d, %v", n, err)
	}
	if n, err := s.InsertString("-", 0); err != nil || n != 7 {
		t.Fatalf("InsertString = %d, %v", n, err)
	}
	if s.String() != "-abcdef" {
		t.Errorf("content = %q", s.String())
	}
	if _, err := s.InsertBytes(nil, 0); StatusOf(err) != NullCPtr {
		t.Errorf("nil bytes = %v", err)
	}
	if _, err := s.InsertBytes(nil, 99); StatusOf(err) != OutOfBounds {
		t.Errorf("bounds should be checked before the pointer, got %v", err)
	}
}

func TestInsertFailureUntouched(t *testing.T) {
	lim := Limit(nil, 8)
	s, _ := NewWith(lim, 4)
	s.SetString("abc")
	if n, err := s.InsertString("xyz", 1); StatusOf(err) != NoMem || n != 3 {
		t.Fatalf("InsertString = %d, %v; want 3, NoMem", n, err)
	}
	if s.String() != "abc" {
		t.Errorf("content = %q", s.String())
	}
}

func TestDeleteAtLength(t *testing.T) {
	s := mustString(t, "abc")
	if _, err := s.DeleteAt(3); StatusOf(err) != OutOfBounds {
		t.Fatalf("DeleteAt(len) = %v, want OutOfBounds", err)
	}
	if s.String() != "abc" {
		t.Errorf("content = %q", s.String())
	}
	c, err := s.DeleteAt(1)
	if err != nil || c != 'b' {
		t.Fatalf("DeleteAt(1) = %q, %v", c, err)
	}
	if s.String() != "ac" {
		t.Errorf("content = %q", s.String())
	}
	checkInvariant(t, s)
}

func TestDeleteRangeClamps(t *testing.T) {
	s := mustString(t, "abcdef")
	if n, err := s.DeleteRange(1, 2); err != nil || n != 4 || s.String() != "adef" {
		t.Fatalf("DeleteRange(1, 2) = %d, %v, %q", n, err, s.String())
	}
	if n, err := s.DeleteRange(2, 100); err != nil || n != 2 || s.String() != "ad" {
		t.Fatalf("DeleteRange past end = %d, %v, %q", n, err, s.String())
	}
	if n, err := s.DeleteRange(2, 1); StatusOf(err) != OutOfBounds || n != 2 {
		t.Errorf("DeleteRange at length = %d, %v", n, err)
	}
	if _, err := s.DeleteRange(0, -1); StatusOf(err) != InvalidArgument {
		t.Errorf("negative count = %v", err)
	}
	checkInvariant(t, s)
}

func TestTruncateAndTrimLeftIdempotent(t *testing.T) {
	s := mustString(t, "abcdef")
	if n, err := s.Truncate(6); err != nil || n != 6 || s.String() != "abcdef" {
		t.Errorf("Truncate(len) = %d, %v, %q", n, err, s.String())
	}
	if n, err := s.Truncate(60); err != nil || n != 6 {
		t.Errorf("Truncate beyond length = %d, %v", n, err)
	}
	if n, err := s.TrimLeft(0); err != nil || n != 6 || s.String() != "abcdef" {
		t.Errorf("TrimLeft(0) = %d, %v, %q", n, err, s.String())
	}
	if n, _ := s.Truncate(4); n != 4 || s.String() != "abcd" {
		t.Errorf("Truncate(4) = %d, %q", n, s.String())
	}
	if n, _ := s.TrimLeft(1); n != 3 || s.String() != "bcd" {
		t.Errorf("TrimLeft(1) = %d, %q", n, s.String())
	}
	if n, _ := s.TrimLeft(10); n != 0 || s.String() != "" {
		t.Errorf("TrimLeft past length = %d, %q", n, s.String())
	}
	if _, err := s.Truncate(-1); StatusOf(err) != InvalidArgument {
		t.Errorf("Truncate(-1) = %v", err)
	}
	checkInvariant(t, s)
}

func TestExchangeAndAt(t *testing.T) {
	s := mustString(t, "cat")
	old, err := s.Exchange(0, 'b')
	if err != nil || old != 'c' || s.String() != "bat" {
		t.Fatalf("Exchange = %q, %v, %q", old, err, s.String())
	}
	if _, err := s.Exchange(3, 'x'); StatusOf(err) != OutOfBounds {
		t.Errorf("Exchange at length = %v", err)
	}
	if _, err := s.Exchange(1, 0); StatusOf(err) != InvalidArgument {
		t.Errorf("Exchange with NUL = %v", err)
	}
	if c, err := s.At(2); err != nil || c != 't' {
		t.Errorf("At(2) = %q, %v", c, err)
	}
}

func TestPops(t *testing.T) {
	s := mustString(t, "xyz")
	if c, err := s.PopBack(); err != nil || c != 'z' {
		t.Fatalf("PopBack = %q, %v", c, err)
	}
	if c, err := s.PopFront(); err != nil || c != 'x' {
		t.Fatalf("PopFront = %q, %v", c, err)
	}
	if c, _ := s.PopBack(); c != 'y' {
		t.Fatalf("PopBack = %q", c)
	}
	if _, err := s.PopBack(); StatusOf(err) != EmptyString {
		t.Errorf("PopBack on empty = %v", err)
	}
	if _, err := s.PopFront(); StatusOf(err) != EmptyString {
		t.Errorf("PopFront on empty = %v", err)
	}
	checkInvariant(t, s)
}

func TestReplaceByte(t *testing.T) {
	s := mustString(t, "a.b.c")
	if n, err := s.ReplaceByte('.', '/'); err != nil || n != 2 || s.String() != "a/b/c" {
		t.Fatalf("ReplaceByte = %d, %v, %q", n, err, s.String())
	}
	if _, err := s.ReplaceByte('/', 0); StatusOf(err) != InvalidArgument {
		t.Errorf("NUL replacement = %v", err)
	}
}

func TestReplaceDeletes(t *testing.T) {
	s := mustString(t, "aXbXc")
	n, err := s.ReplaceString("X", "")
	if err != nil || n != 2 {
		t.Fatalf("ReplaceString = %d, %v; want 2", n, err)
	}
	if s.String() != "abc" {
		t.Errorf("content = %q, want abc", s.String())
	}
	checkInvariant(t, s)
}

// An empty needle matches nothing sensible and is refused, while an empty
// replacement is an ordinary deletion.
func TestReplaceEmptyOldVersusEmptyNew(t *testing.T) {
	s := mustString(t, "abab")
	if _, err := s.Replace([]byte{}, []byte("x")); StatusOf(err) != InvalidArgument {
		t.Errorf("empty old = %v, want InvalidArgument", err)
	}
	if _, err := s.ReplaceString("", "x"); StatusOf(err) != InvalidArgument {
		t.Errorf("empty old string = %v, want InvalidArgument", err)
	}
	if _, err := s.Replace(nil, []byte("x")); StatusOf(err) != NullCPtr {
		t.Errorf("nil old = %v, want NullCPtr", err)
	}
	if s.String() != "abab" {
		t.Fatalf("refused replace changed content to %q", s.String())
	}
	if n, err := s.Replace([]byte("b"), nil); err != nil || n != 2 || s.String() != "aa" {
		t.Errorf("nil new = %d, %v, %q", n, err, s.String())
	}
}

func TestReplaceNonOverlapping(t *testing.T) {
	s := mustString(t, "aaaa")
	if n, _ := s.ReplaceString("aa", "b"); n != 2 || s.String() != "bb" {
		t.Errorf("aaaa/aa->b = %d, %q", n, s.String())
	}
	s = mustString(t, "aaa")
	if n, _ := s.ReplaceString("aa", "b"); n != 1 || s.String() != "ba" {
		t.Errorf("aaa/aa->b = %d, %q", n, s.String())
	}
}

func TestReplaceGrows(t *testing.T) {
	s := mustString(t, "a-b-c")
	n, err := s.ReplaceString("-", "<->")
	if err != nil || n != 2 {
		t.Fatalf("ReplaceString = %d, %v", n, err)
	}
	if s.String() != "a<->b<->c" {
		t.Errorf("content = %q", s.String())
	}
	checkInvariant(t, s)

	// replacement containing the needle is not rescanned
	s = mustString(t, "xx")
	if n, _ := s.ReplaceString("x", "xx"); n != 2 || s.String() != "xxxx" {
		t.Errorf("x->xx = %d, %q", n, s.String())
	}
}

func TestReplaceSameLength(t *testing.T) {
	s := mustString(t, "one two one")
	if n, _ := s.ReplaceString("one", "333"); n != 2 || s.String() != "333 two 333" {
		t.Errorf("same length replace = %d, %q", n, s.String())
	}
	if n, _ := s.ReplaceString("absent", "x"); n != 0 || s.String() != "333 two 333" {
		t.Errorf("no match = %d, %q", n, s.String())
	}
}

func TestReplaceFailureUntouched(t *testing.T) {
	lim := Limit(nil, 10)
	s, _ := NewWith(lim, 6)
	s.SetString("a-b-c")
	if _, err := s.ReplaceString("-", "<--->"); StatusOf(err) != NoMem {
		t.Fatalf("ReplaceString = %v, want NoMem", err)
	}
	if s.String() != "a-b-c" {
		t.Errorf("content = %q", s.String())
	}
}

func TestRemove(t *testing.T) {
	s := mustString(t, "the cat the hat")
	if n, err := s.RemoveString("the "); err != nil || n != 2 || s.String() != "cat hat" {
		t.Fatalf("RemoveString = %d, %v, %q", n, err, s.String())
	}
	if n, err := s.Remove([]byte("at")); err != nil || n != 2 || s.String() != "c h" {
		t.Fatalf("Remove = %d, %v, %q", n, err, s.String())
	}
}
