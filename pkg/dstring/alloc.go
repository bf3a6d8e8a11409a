package dstring

import (
	"math"
	"sync"
)

// Allocator provides the backing storage for a String.
//
// Realloc must leave b untouched and still owned by the caller when it
// fails; on success b belongs to the allocator again and must not be used.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Realloc(b []byte, n int) ([]byte, error)
	Free(b []byte)
}

// DefaultAllocator backs strings created without an explicit allocator.
var DefaultAllocator Allocator = HeapAllocator{}

// HeapAllocator allocates from the Go heap. Requests larger than Max fail
// with NoMem when Max is positive.
type HeapAllocator struct {
	Max int
}

func (h HeapAllocator) check(n int) error {
	if n <= 0 {
		return InvalidBufLen
	}
	if h.Max > 0 && n > h.Max {
		return NoMem
	}
	return nil
}

func (h HeapAllocator) Alloc(n int) ([]byte, error) {
	if err := h.check(n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

func (h HeapAllocator) Realloc(b []byte, n int) ([]byte, error) {
	if err := h.check(n); err != nil {
		return nil, err
	}
	nb := make([]byte, n)
	copy(nb, b)
	return nb, nil
}

func (HeapAllocator) Free([]byte) {}

// LimitAllocator caps the bytes outstanding across every buffer it hands
// out. It is safe for concurrent use.
type LimitAllocator struct {
	parent Allocator
	mu     sync.Mutex
	budget int
	used   int
}

// Limit wraps parent so that no more than budget bytes are live at once.
// A nil parent means DefaultAllocator.
func Limit(parent Allocator, budget int) *LimitAllocator {
	if parent == nil {
		parent = DefaultAllocator
	}
	return &LimitAllocator{parent: parent, budget: budget}
}

// Used reports the bytes currently allocated through l.
func (l *LimitAllocator) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// SetBudget changes the cap. Buffers already handed out are not affected.
func (l *LimitAllocator) SetBudget(budget int) {
	l.mu.Lock()
	l.budget = budget
	l.mu.Unlock()
}

func (l *LimitAllocator) Alloc(n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 {
		return nil, InvalidBufLen
	}
	if n > l.budget-l.used {
		return nil, NoMem
	}
	b, err := l.parent.Alloc(n)
	if err != nil {
		return nil, err
	}
	l.used += len(b)
	return b, nil
}

func (l *LimitAllocator) Realloc(b []byte, n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 {
		return nil, InvalidBufLen
	}
	old := len(b)
	// the old and new regions coexist until the copy is done; a shrink
	// never raises the total, so it always gets through
	if n > old && n > l.budget-l.used {
		return nil, NoMem
	}
	nb, err := l.parent.Realloc(b, n)
	if err != nil {
		return nil, err
	}
	l.used += len(nb) - old
	return nb, nil
}

func (l *LimitAllocator) Free(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.used -= len(b)
	l.parent.Free(b)
}

// addSize returns a+b, or false when the sum would overflow an int.
func addSize(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
