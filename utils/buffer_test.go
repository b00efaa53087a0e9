package utils

import (
	"errors"
	"testing"

	"github.com/oomph-ac/thirdperson/oerror"
)

func TestBufferOverflowIsError(t *testing.T) {
	b, err := NewBuffer[string](2)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Add("a"); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("b"); err != nil {
		t.Fatal(err)
	}
	if !b.IsFull() {
		t.Fatalf("expected buffer to be full")
	}
	if err := b.Add("c"); !errors.Is(err, oerror.ErrBufferFull) {
		t.Fatalf("expected ErrBufferFull, got %v", err)
	}
	// nothing was evicted.
	if v, _ := b.Get(0); v != "a" {
		t.Fatalf("expected first element to survive, got %q", v)
	}
	if v, ok := b.Last(); !ok || v != "b" {
		t.Fatalf("expected last element b, got %q", v)
	}
}

func TestBufferClear(t *testing.T) {
	b, _ := NewBuffer[int](3)
	_ = b.Add(1)
	_ = b.Add(2)
	b.Clear()

	if b.Len() != 0 || b.Cap() != 3 {
		t.Fatalf("expected empty buffer with capacity 3, got %d/%d", b.Len(), b.Cap())
	}
	if _, ok := b.Last(); ok {
		t.Fatalf("expected no last element after clear")
	}
	if _, err := b.Get(0); !errors.Is(err, oerror.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	for i := range 3 {
		if err := b.Add(i); err != nil {
			t.Fatalf("expected cleared buffer to accept %d elements: %v", b.Cap(), err)
		}
	}
	sum := 0
	for v := range b.All() {
		sum += v
	}
	if sum != 3 {
		t.Fatalf("expected sum 3, got %d", sum)
	}
}

func TestNewBufferRequiresCapacity(t *testing.T) {
	if _, err := NewBuffer[int](-1); !errors.Is(err, oerror.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
}
