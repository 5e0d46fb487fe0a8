package nulterm

import "errors"

var (
	// ErrInteriorEmpty is an error that occurs when a buffer to be adopted
	// holds a nil slot before its final position. Such a buffer would be
	// silently truncated by any consumer that stops at the first nil.
	ErrInteriorEmpty = errors.New("empty slot before end of buffer")

	// ErrNilElement is an error that occurs when a nil element pointer is
	// given where only present elements are allowed.
	ErrNilElement = errors.New("nil element")
)
