// Package nulterm implements sentinel-terminated arrays of element pointers.
//
// A terminated buffer is a []*T of N slots where slot N-1 is nil and no other
// slot is nil. The nil slot is the sentinel: because every slot is a pointer,
// the buffer is already laid out as the NULL-terminated pointer array expected
// by native interfaces such as the argv and envp parameters of execve(2).
//
// [Slice] is the borrowed view over such a buffer, [Array] is the owned form.
// An [Array] embeds its [Slice], so all view operations apply to both.
package nulterm

import (
	"iter"
	"unsafe"
)

// Viewer is implemented by anything that can present itself as a terminated
// [Slice]. It is what consumers at the native boundary accept.
type Viewer[T any] interface {
	View() Slice[T]
}

// Slice is a borrowed view over a terminated buffer of element pointers. It
// can only be obtained through [FromSlice], [FromSliceUnchecked] or from an
// [Array], so a holder may rely on the buffer being terminated.
//
// The zero Slice is not valid and has no [Slice.Pointer].
type Slice[T any] struct {
	inner []*T
}

// FromSlice returns a view over slots if the last slot is nil and no other
// slot is nil. An empty input or a punctured buffer is rejected with false.
func FromSlice[T any](slots []*T) (Slice[T], bool) {
	if !validate(slots) {
		return Slice[T]{}, false
	}

	return FromSliceUnchecked(slots), true
}

// FromSliceUnchecked returns a view over slots without any validation. The
// caller asserts that slots is non-empty, that its last element is nil and
// that no other element is nil. Violating this is undefined behavior once the
// view reaches a system call.
func FromSliceUnchecked[T any](slots []*T) Slice[T] {
	return Slice[T]{inner: slots}
}

// validate reports whether slots is a terminated buffer.
func validate[T any](slots []*T) bool {
	n := len(slots)
	if n == 0 || slots[n-1] != nil {
		return false
	}

	return interiorEmpty(slots[:n-1]) < 0
}

// interiorEmpty returns the index of the first nil within slots, or -1.
func interiorEmpty[T any](slots []*T) int {
	for i, p := range slots {
		if p == nil {
			return i
		}
	}

	return -1
}

// View returns s itself, so that a [Slice] satisfies [Viewer].
func (s Slice[T]) View() Slice[T] {
	return s
}

// Len returns the logical length, excluding the sentinel.
func (s Slice[T]) Len() int {
	if len(s.inner) == 0 {
		return 0
	}

	return len(s.inner) - 1
}

// Words returns the physical slot count including the sentinel. This is the
// number of machine words found at [Slice.Pointer].
func (s Slice[T]) Words() int {
	return len(s.inner)
}

// At returns the element pointer at logical index i. It panics if i is out of
// the logical range, the sentinel is not addressable.
func (s Slice[T]) At(i int) *T {
	if i < 0 || i >= s.Len() {
		panic("nulterm: index out of range")
	}

	return s.inner[i]
}

// Set replaces the element pointer at logical index i. It panics if i is out
// of the logical range or if v is nil, either of which would break the
// termination of the buffer.
func (s Slice[T]) Set(i int, v *T) {
	if v == nil {
		panic("nulterm: nil element")
	}
	if i < 0 || i >= s.Len() {
		panic("nulterm: index out of range")
	}

	s.inner[i] = v
}

// Refs returns a copy of the logical slice of element pointers.
func (s Slice[T]) Refs() []*T {
	refs := make([]*T, s.Len())
	copy(refs, s.inner)

	return refs
}

// Values returns copies of the elements in order.
func (s Slice[T]) Values() []T {
	values := make([]T, 0, s.Len())
	for v := range s.Elems() {
		values = append(values, *v)
	}

	return values
}

// All returns an iterator over index/element pairs. Iteration stops at the
// first nil slot, which is always the sentinel.
func (s Slice[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i, p := range s.inner {
			if p == nil || !yield(i, p) {
				return
			}
		}
	}
}

// Elems returns an iterator over the elements, stopping at the sentinel.
func (s Slice[T]) Elems() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, p := range s.All() {
			if !yield(p) {
				return
			}
		}
	}
}

// Pointer returns the address of the first slot. The memory at that address is
// [Slice.Words] pointers, the last of which is nil. It returns nil for the
// zero Slice.
//
// The address is only valid while s (or the [Array] it came from) is
// reachable; convert it to uintptr only within the system call expression and
// keep the owner alive with [runtime.KeepAlive] afterwards.
func (s Slice[T]) Pointer() unsafe.Pointer {
	if len(s.inner) == 0 {
		return nil
	}

	return unsafe.Pointer(&s.inner[0])
}

// Clone copies the elements into a new [Array] that owns them.
func (s Slice[T]) Clone() *Array[T] {
	return New(s.Values())
}
