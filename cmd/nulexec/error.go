//go:build linux

package main

import "errors"

// ErrNoProgram occurs when no program to execute was given.
var ErrNoProgram = errors.New("no program given")

// ErrExecFailed occurs when the kernel refused to replace the process image.
// Errors before that stage do not carry it.
var ErrExecFailed = errors.New("exec failed")
