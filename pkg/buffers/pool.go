// Package buffers keeps pools of scratch byte slices for short-lived reads.
package buffers

import (
	"math/bits"
	"sync"
)

const (
	// MinClassSize is the smallest pooled buffer size
	MinClassSize = 64

	// MaxClassSize is the largest pooled buffer size; bigger requests are
	// allocated directly and never pooled
	MaxClassSize = 64 * 1024
)

// BufferPool maintains a pool of same-sized byte slices to reduce GC pressure
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with the specified buffer size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

// Size returns the length of the buffers handed out by p
func (p *BufferPool) Size() int { return p.size }

// Get retrieves a buffer from the pool
func (p *BufferPool) Get() []byte {
	buffer := *(p.pool.Get().(*[]byte))
	if cap(buffer) < p.size {
		buffer = make([]byte, p.size)
	}
	// No need to zero the buffer - callers only read what they filled
	return buffer[:p.size]
}

// Put returns a buffer to the pool
func (p *BufferPool) Put(buffer []byte) {
	if buffer == nil || cap(buffer) < p.size {
		return // Don't keep undersized buffers
	}
	buffer = buffer[:p.size]
	p.pool.Put(&buffer)
}

// classes holds one pool per power of two from MinClassSize to MaxClassSize
var classes = func() []*BufferPool {
	var ps []*BufferPool
	for size := MinClassSize; size <= MaxClassSize; size <<= 1 {
		ps = append(ps, NewBufferPool(size))
	}
	return ps
}()

// classFor returns the index of the smallest class holding n bytes, or -1
func classFor(n int) int {
	if n > MaxClassSize {
		return -1
	}
	if n <= MinClassSize {
		return 0
	}
	return bits.Len(uint(n-1)) - bits.Len(uint(MinClassSize-1))
}

// Get returns a buffer of length n, pooled when n fits a size class
func Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	i := classFor(n)
	if i < 0 {
		return make([]byte, n)
	}
	return classes[i].Get()[:n]
}

// Put hands a buffer obtained from Get back to its class
func Put(b []byte) {
	c := cap(b)
	if c < MinClassSize || c > MaxClassSize || c&(c-1) != 0 {
		return
	}
	classes[classFor(c)].Put(b[:c])
}
