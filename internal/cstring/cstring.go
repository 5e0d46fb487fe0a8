// Package cstring provides owned NUL-terminated byte strings, the single-value
// counterpart of the terminated pointer arrays in package nulterm.
package cstring

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// CString is an owned NUL-terminated byte sequence without interior NUL
// bytes. The zero CString is the empty string.
type CString struct {
	b []byte
}

// New returns a [CString] holding s. A NUL byte within s is reported as
// [ErrInteriorNul].
func New(s string) (CString, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return CString{}, fmt.Errorf("(cstring-new) %w: at byte %d", ErrInteriorNul, i)
	}

	b := make([]byte, len(s)+1)
	copy(b, s)

	return CString{b: b}, nil
}

// FromBytes returns a [CString] holding a copy of b. A single trailing NUL in
// b is accepted as the terminator, any other NUL is reported as
// [ErrInteriorNul].
func FromBytes(b []byte) (CString, error) {
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}

	if i := bytes.IndexByte(b, 0); i >= 0 {
		return CString{}, fmt.Errorf("(cstring-frombytes) %w: at byte %d", ErrInteriorNul, i)
	}

	c := make([]byte, len(b)+1)
	copy(c, b)

	return CString{b: c}, nil
}

// Lit returns a [CString] for a string known to be free of NUL bytes, such as
// a literal. It panics otherwise.
func Lit(s string) CString {
	c, err := New(s)
	if err != nil {
		panic(err)
	}

	return c
}

// FromStrings converts each string into a [CString], preserving order. The
// first string holding a NUL byte fails the whole conversion.
func FromStrings(ss []string) ([]CString, error) {
	out := make([]CString, 0, len(ss))
	for i, s := range ss {
		c, err := New(s)
		if err != nil {
			return nil, fmt.Errorf("(cstring-fromstrings) index %d: %w", i, err)
		}
		out = append(out, c)
	}

	return out, nil
}

// Ptr returns the address of the first byte. The bytes at that address run up
// to and including the terminating NUL. The address stays valid for as long as
// c, or a copy of it, is reachable.
func (c CString) Ptr() *byte {
	if c.b == nil {
		return &empty[0]
	}

	return &c.b[0]
}

// Len returns the length in bytes, excluding the terminator.
func (c CString) Len() int {
	if c.b == nil {
		return 0
	}

	return len(c.b) - 1
}

// Size returns the length in bytes, including the terminator.
func (c CString) Size() int {
	return c.Len() + 1
}

// Bytes returns a copy of the content, excluding the terminator.
func (c CString) Bytes() []byte {
	return bytes.Clone(c.b[:c.Len()])
}

// String returns the content as a Go string.
func (c CString) String() string {
	return string(c.b[:c.Len()])
}

// GoString reads the NUL-terminated byte sequence starting at p. A nil p
// yields the empty string.
func GoString(p *byte) string {
	return unix.BytePtrToString(p)
}

//nolint:gochecknoglobals
var empty = [1]byte{0}
