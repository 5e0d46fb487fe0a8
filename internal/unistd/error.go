//go:build linux

package unistd

import "errors"

// ErrNotTerminated is an error that occurs when an argument or environment
// array without a sentinel, such as the zero [nulterm.Slice], is handed to an
// exec call.
var ErrNotTerminated = errors.New("array is not terminated")
