package cstring

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrInteriorNul is an error that occurs when a string to be converted holds
// a NUL byte, which would truncate it on the native side. It wraps
// [unix.EINVAL], the error the system call layer reports for the same case.
//
//nolint:gochecknoglobals
var ErrInteriorNul = fmt.Errorf("interior NUL byte: %w", unix.EINVAL)
