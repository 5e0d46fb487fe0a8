package nulterm

import (
	"fmt"
	"iter"
)

// Array is an owned terminated buffer. It is write-once: the termination is
// established at construction and no operation resizes it afterwards. All
// read and iteration operations come from the embedded [Slice].
type Array[T any] struct {
	Slice[T]

	// backing holds the elements when the Array was built from values, the
	// slots point into it.
	backing []T
}

// New copies values into a single backing allocation and returns an [Array]
// with one slot per value followed by the sentinel. An empty input yields an
// Array holding only the sentinel.
func New[T any](values []T) *Array[T] {
	backing := make([]T, len(values))
	copy(backing, values)

	slots := make([]*T, len(backing)+1)
	for i := range backing {
		slots[i] = &backing[i]
	}

	return &Array[T]{
		Slice:   FromSliceUnchecked(slots),
		backing: backing,
	}
}

// Collect consumes a finite sequence into a new [Array].
func Collect[T any](seq iter.Seq[T]) *Array[T] {
	var values []T
	for v := range seq {
		values = append(values, v)
	}

	return New(values)
}

// FromRefs returns an [Array] whose slots alias the given element pointers.
// The elements are not copied. A nil pointer cannot be stored and is reported
// as [ErrNilElement].
func FromRefs[T any](refs []*T) (*Array[T], error) {
	if i := interiorEmpty(refs); i >= 0 {
		return nil, fmt.Errorf("(nulterm-fromrefs) %w: index %d", ErrNilElement, i)
	}

	slots := make([]*T, len(refs)+1)
	copy(slots, refs)

	return &Array[T]{Slice: FromSliceUnchecked(slots)}, nil
}

// Adopt copies slots into a new terminated buffer. A sentinel is appended
// only if the last slot is not already nil. A nil slot anywhere before the
// final position is rejected with [ErrInteriorEmpty], the same rule
// [FromSlice] applies.
//
// The buffer never shares storage with slots, so later writes to slots
// cannot reach it.
func Adopt[T any](slots []*T) (*Array[T], error) {
	body := slots
	if n := len(body); n > 0 && body[n-1] == nil {
		body = body[:n-1]
	}

	if i := interiorEmpty(body); i >= 0 {
		return nil, fmt.Errorf("(nulterm-adopt) %w: index %d of %d", ErrInteriorEmpty, i, len(slots))
	}

	owned := make([]*T, len(body)+1)
	copy(owned, body)

	return &Array[T]{Slice: FromSliceUnchecked(owned)}, nil
}
