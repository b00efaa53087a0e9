package utils

import (
	"iter"

	"github.com/oomph-ac/thirdperson/oerror"
)

// Buffer is a fixed-capacity append-only store. Unlike History it never evicts: appending to a
// full buffer is an error, so running out of room is always visible to the caller.
type Buffer[T any] struct {
	items []T
	count int
}

// NewBuffer creates a buffer holding at most capacity elements.
func NewBuffer[T any](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, oerror.New("buffer: %w (got %d)", oerror.ErrCapacity, capacity)
	}
	return &Buffer[T]{items: make([]T, capacity)}, nil
}

// Add appends item, or returns ErrBufferFull once the buffer is at capacity.
func (b *Buffer[T]) Add(item T) error {
	if b.count >= len(b.items) {
		return oerror.New("buffer: add at %d: %w", b.count, oerror.ErrBufferFull)
	}
	b.items[b.count] = item
	b.count++
	return nil
}

// Clear empties the buffer without reallocating.
func (b *Buffer[T]) Clear() {
	clear(b.items[:b.count])
	b.count = 0
}

// Get returns the i-th appended element.
func (b *Buffer[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= b.count {
		return zero, oerror.New("buffer: get %d of %d: %w", i, b.count, oerror.ErrOutOfRange)
	}
	return b.items[i], nil
}

// Last returns the most recently appended element.
func (b *Buffer[T]) Last() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	return b.items[b.count-1], true
}

// All yields the elements in insertion order.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range b.count {
			if !yield(b.items[i]) {
				return
			}
		}
	}
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// IsFull returns true if the next Add would fail.
func (b *Buffer[T]) IsFull() bool {
	return b.count == len(b.items)
}
