// Package errno translates raw system call results into Go errors.
package errno

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Result converts the outcome of a raw system call into its return value or
// an error. A zero errno is success.
func Result(r1 uintptr, e unix.Errno) (int, error) {
	if err := Of(e); err != nil {
		return -1, err
	}

	return int(r1), nil
}

// Of returns e as an error, or nil for a zero errno.
func Of(e unix.Errno) error {
	if e != 0 {
		return e
	}

	return nil
}

// Wrap prefixes err with the failed operation, keeping the errno reachable
// through [errors.Is]. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("(unistd-%s) %w", op, err)
}

// Code extracts the errno from err. It returns 0 if err does not carry one.
func Code(err error) unix.Errno {
	var e unix.Errno
	if errors.As(err, &e) {
		return e
	}

	return 0
}
