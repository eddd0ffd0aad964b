package ast

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Arena stores values addressed by 1-based uint32 handles; 0 is "none".
// Handles stay valid for the arena's lifetime, pointers only until the next
// Allocate.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

func (a *Arena[T]) Allocate(value T) uint32 {
	h, err := safecast.Conv[uint32](len(a.data) + 1)
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	a.data = append(a.data, value)
	return h
}

// Get returns nil for 0 and out-of-range handles.
func (a *Arena[T]) Get(h uint32) *T {
	if h == 0 || uint64(h) > uint64(len(a.data)) {
		return nil
	}
	return &a.data[h-1]
}

// Clone copies the stored values; handles stay the same.
func (a *Arena[T]) Clone() *Arena[T] {
	return &Arena[T]{data: slices.Clone(a.data)}
}

// Slice exposes the storage; element i has handle i+1.
func (a *Arena[T]) Slice() []T { return a.data }

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data)) // #nosec G115 -- bounded by Allocate
}
