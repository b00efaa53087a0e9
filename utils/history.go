package utils

import (
	"iter"

	"github.com/oomph-ac/thirdperson/assert"
	"github.com/oomph-ac/thirdperson/oerror"
)

// History is a fixed-capacity circular buffer indexed by recency: offset 0 is the most recently
// added element. Once full, adding an element silently overwrites the oldest one. It is not safe
// for concurrent use.
type History[T any] struct {
	items []T
	head  int // index of the most recent element
	size  int
}

// NewHistory creates a history holding at most capacity elements. The capacity never changes.
func NewHistory[T any](capacity int) (*History[T], error) {
	if capacity <= 0 {
		return nil, oerror.New("history: %w (got %d)", oerror.ErrCapacity, capacity)
	}
	return &History[T]{
		items: make([]T, capacity),
		head:  -1,
	}, nil
}

// Add pushes item as the most recent element, evicting the oldest one when full.
func (h *History[T]) Add(item T) {
	h.head = (h.head + 1) % len(h.items)
	h.items[h.head] = item
	if h.size < len(h.items) {
		h.size++
	}
}

// Fill overwrites every slot with item, leaving the history full.
func (h *History[T]) Fill(item T) {
	for i := range h.items {
		h.items[i] = item
	}
	if h.head < 0 {
		h.head = 0
	}
	h.size = len(h.items)
}

// Get returns the element offset steps back from the most recent one.
func (h *History[T]) Get(offset int) (T, error) {
	var zero T
	if offset < 0 || offset >= h.size {
		return zero, oerror.New("history: get offset %d of %d: %w", offset, h.size, oerror.ErrOutOfRange)
	}
	return h.items[h.index(offset)], nil
}

// At is like Get but panics when offset is outside the stored range.
func (h *History[T]) At(offset int) T {
	return *h.Ref(offset)
}

// Ref returns a pointer to the slot offset steps back from the most recent element. The pointer
// is invalidated once enough elements are added to evict that slot.
func (h *History[T]) Ref(offset int) *T {
	assert.IsTrue(offset >= 0 && offset < h.size, "history: offset %d of %d: %w", offset, h.size, oerror.ErrOutOfRange)
	return &h.items[h.index(offset)]
}

// Set replaces the element offset steps back from the most recent one.
func (h *History[T]) Set(offset int, item T) error {
	if offset < 0 || offset >= h.size {
		return oerror.New("history: set offset %d of %d: %w", offset, h.size, oerror.ErrOutOfRange)
	}
	h.items[h.index(offset)] = item
	return nil
}

// All yields the stored elements from newest (offset 0) to oldest.
func (h *History[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for offset := range h.size {
			if !yield(offset, h.items[h.index(offset)]) {
				return
			}
		}
	}
}

// Len returns the number of stored elements.
func (h *History[T]) Len() int {
	return h.size
}

// Cap returns the fixed capacity.
func (h *History[T]) Cap() int {
	return len(h.items)
}

// IsEmpty returns true if nothing has been added yet.
func (h *History[T]) IsEmpty() bool {
	return h.size == 0
}

func (h *History[T]) index(offset int) int {
	return (h.head - offset + len(h.items)) % len(h.items)
}
