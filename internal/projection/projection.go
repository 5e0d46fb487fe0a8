// Package projection builds terminated pointer arrays whose elements point
// into a collection of owned values, and keeps that collection alive for as
// long as the array is.
//
// A [Vec] is an arena: it owns both the source values and their projection.
// The element pointers are ordinary Go pointers held in a []*T, so the garbage
// collector keeps every source reachable through the Vec. Raw addresses only
// come into existence at the native boundary, see [Vec.Use].
package projection

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/desertwitch/nularray/internal/nulterm"
)

// Mapping is implemented by owned values that can hand out the address of
// their own representation without copying it.
type Mapping[T any] interface {
	Ptr() *T
}

// Vec owns a collection of source values and the terminated array of element
// pointers projected from them. A Vec is immutable after construction and
// safe for concurrent readers.
type Vec[S any, T any] struct {
	sources []S
	array   *nulterm.Array[T]

	mu     sync.Mutex
	pinner *runtime.Pinner
}

// New takes ownership of sources and projects every element through project,
// in order. The projection must only take addresses within the value it is
// given, it must not copy or reallocate, and it must not return nil. The
// caller must not modify sources after the call.
func New[S any, T any](sources []S, project func(*S) *T) *Vec[S, T] {
	refs := make([]*T, len(sources)+1)
	for i := range sources {
		refs[i] = project(&sources[i])
	}

	array, err := nulterm.Adopt(refs)
	if err != nil {
		panic("projection: projected a nil element pointer")
	}

	return &Vec[S, T]{
		sources: sources,
		array:   array,
	}
}

// MapFrom projects sources through their [Mapping].
func MapFrom[S Mapping[T], T any](sources []S) *Vec[S, T] {
	return New(sources, func(s *S) *T {
		return (*s).Ptr()
	})
}

// View returns the terminated array of element pointers.
func (v *Vec[S, T]) View() nulterm.Slice[T] {
	return v.array.View()
}

// Len returns the number of projected elements.
func (v *Vec[S, T]) Len() int {
	return len(v.sources)
}

// Sources returns a copy of the source collection.
func (v *Vec[S, T]) Sources() []S {
	out := make([]S, len(v.sources))
	copy(out, v.sources)

	return out
}

// Use calls fn with the address of the terminated array. The address and every
// element address reachable from it stay valid until fn returns, even if fn
// only holds them as uintptr, such as in a system call argument list.
func (v *Vec[S, T]) Use(fn func(p unsafe.Pointer) error) error {
	err := fn(v.array.Pointer())
	runtime.KeepAlive(v)

	return err
}

// Pin pins the array and all source memory it points into, so that the
// addresses may be handed to foreign code that retains them beyond a single
// call. Pinning an already pinned Vec has no effect. Every Pin must be
// balanced by [Vec.Unpin].
func (v *Vec[S, T]) Pin() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pinner != nil {
		return
	}

	v.pinner = &runtime.Pinner{}
	if p := v.array.Pointer(); p != nil {
		v.pinner.Pin(p)
	}
	for e := range v.array.Elems() {
		v.pinner.Pin(e)
	}
}

// Unpin releases a previous [Vec.Pin].
func (v *Vec[S, T]) Unpin() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pinner == nil {
		return
	}

	v.pinner.Unpin()
	v.pinner = nil
}

// Pinned reports whether the Vec is currently pinned.
func (v *Vec[S, T]) Pinned() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pinner != nil
}
