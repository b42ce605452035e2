package guard

import "sync"

// SharedCell holds a value behind a reader/writer lock: many concurrent
// readers, or one exclusive writer.
type SharedCell[T any] struct {
	mu    sync.RWMutex
	value T
	seq   uint64
}

// NewSharedCell constructs a SharedCell holding the given initial value.
func NewSharedCell[T any](value T) *SharedCell[T] {
	return &SharedCell[T]{value: value, seq: nextSeq()}
}

func (c *SharedCell[T]) Seq() uint64 { return c.seq }

func (c *SharedCell[T]) lock()   { c.mu.Lock() }
func (c *SharedCell[T]) unlock() { c.mu.Unlock() }

// WithShared locks c for exclusive (write) access.
func WithShared[T, R any](c *SharedCell[T], fn func(value *T) R) R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.value)
}

// WithReadOnly locks c for shared (read) access. fn must not mutate the
// pointed-to value; the compiler cannot enforce this, so callers only get
// read access by discipline.
func WithReadOnly[T, R any](c *SharedCell[T], fn func(value *T) R) R {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(&c.value)
}
