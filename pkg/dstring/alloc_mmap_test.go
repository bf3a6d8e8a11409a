//go:build unix

package dstring

import (
	"strings"
	"testing"
)

func TestMmapAllocatorGrowth(t *testing.T) {
	s, err := NewWith(MmapAllocator{}, 4)
	if err != nil {
		t.Fatalf("NewWith failed: %v", err)
	}
	defer Free(&s)

	for i := 0; i < 10; i++ {
		if _, err := s.ConcatString("mapped!"); err != nil {
			t.Fatalf("ConcatString failed: %v", err)
		}
	}
	if s.String() != strings.Repeat("mapped!", 10) {
		t.Errorf("content = %q", s.String())
	}
	checkInvariant(t, s)

	// growth unmaps the region the view points into
	v, _ := s.View()
	if _, err := s.ConcatBytes(v); err != nil {
		t.Fatalf("ConcatBytes(view) failed: %v", err)
	}
	if s.String() != strings.Repeat("mapped!", 20) {
		t.Errorf("self append over a remap = %q", s.String())
	}
}

func TestMmapAllocatorReadLine(t *testing.T) {
	s, err := NewWith(MmapAllocator{}, 1)
	if err != nil {
		t.Fatalf("NewWith failed: %v", err)
	}
	defer Free(&s)
	st := NewStream(strings.NewReader("mmap backed line\n"))
	if _, err := s.ReadLine(st); err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if s.String() != "mmap backed line\n" {
		t.Errorf("content = %q", s.String())
	}
}

func TestMmapAllocatorUnmapFailure(t *testing.T) {
	var a MmapAllocator
	// a heap slice was never mapped, so unmapping it fails
	foreign := []byte("not a mapping")

	before := UnmapFailures()
	a.Free(foreign)
	if got := UnmapFailures() - before; got != 1 {
		t.Errorf("UnmapFailures grew by %d, want 1", got)
	}

	nb, err := a.Realloc(foreign, 64)
	if StatusOf(err) != NoMem || nb != nil {
		t.Fatalf("Realloc over a failed unmap = %v, %v", nb, err)
	}
	if string(foreign) != "not a mapping" {
		t.Errorf("old region changed: %q", foreign)
	}

	b, err := a.Alloc(32)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	before = UnmapFailures()
	a.Free(b)
	if UnmapFailures() != before {
		t.Errorf("unmapping a real region was counted as a failure")
	}
}
