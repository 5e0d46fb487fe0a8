//go:build linux

package unistd

import (
	"github.com/desertwitch/nularray/internal/cstring"
	"github.com/desertwitch/nularray/internal/nulterm"
)

// Unix is an implementation wrapping the system calls of this package, for
// injection into consumers that declare the subset they need.
type Unix struct{}

// Execve wraps around [Execve].
func (*Unix) Execve(path cstring.CString, argv, envp nulterm.Viewer[byte]) error {
	return Execve(path, argv, envp)
}

// Execvpe wraps around [Execvpe].
func (*Unix) Execvpe(file string, argv, envp nulterm.Viewer[byte]) error {
	return Execvpe(file, argv, envp)
}

// Chdir wraps around [Chdir].
func (*Unix) Chdir(path cstring.CString) error {
	return Chdir(path)
}

// Chroot wraps around [Chroot].
func (*Unix) Chroot(path cstring.CString) error {
	return Chroot(path)
}

// Isatty wraps around [Isatty].
func (*Unix) Isatty(fd int) (bool, error) {
	return Isatty(fd)
}
