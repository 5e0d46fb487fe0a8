//go:build linux

package unistd

import (
	"github.com/desertwitch/nularray/internal/errno"
	"golang.org/x/sys/unix"
)

// Dup duplicates oldfd onto the lowest free descriptor.
func Dup(oldfd int) (int, error) {
	fd, err := unix.Dup(oldfd)

	return fd, errno.Wrap("dup", err)
}

// Dup2 duplicates oldfd onto newfd, closing newfd first if it is open. If both
// are equal, newfd is returned after checking that it is open.
func Dup2(oldfd, newfd int) (int, error) {
	if oldfd == newfd {
		if _, err := unix.FcntlInt(uintptr(oldfd), unix.F_GETFD, 0); err != nil {
			return -1, errno.Wrap("dup2", err)
		}

		return newfd, nil
	}

	if err := unix.Dup3(oldfd, newfd, 0); err != nil {
		return -1, errno.Wrap("dup2", err)
	}

	return newfd, nil
}

// Dup3 is [Dup2] with flags, of which only O_CLOEXEC is meaningful. Equal
// descriptors are rejected with EINVAL.
func Dup3(oldfd, newfd, flags int) (int, error) {
	if oldfd == newfd {
		return -1, errno.Wrap("dup3", unix.EINVAL)
	}

	if err := unix.Dup3(oldfd, newfd, flags); err != nil {
		return -1, errno.Wrap("dup3", err)
	}

	return newfd, nil
}

// Close closes fd.
func Close(fd int) error {
	return errno.Wrap("close", unix.Close(fd))
}

// Read reads up to len(buf) bytes from fd.
func Read(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)

	return n, errno.Wrap("read", err)
}

// Write writes buf to fd and returns the number of bytes written.
func Write(fd int, buf []byte) (int, error) {
	n, err := unix.Write(fd, buf)

	return n, errno.Wrap("write", err)
}

// Pipe creates a pipe and returns its read and write ends.
func Pipe() (int, int, error) {
	return Pipe2(0)
}

// Pipe2 creates a pipe with O_CLOEXEC and/or O_NONBLOCK set on both ends.
func Pipe2(flags int) (int, int, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], flags); err != nil {
		return -1, -1, errno.Wrap("pipe2", err)
	}

	return fds[0], fds[1], nil
}

// Ftruncate truncates the file behind fd to length bytes.
func Ftruncate(fd int, length int64) error {
	return errno.Wrap("ftruncate", unix.Ftruncate(fd, length))
}

// Isatty reports whether fd refers to a terminal. A valid descriptor that is
// not a terminal is not an error.
func Isatty(fd int) (bool, error) {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err == nil {
		return true, nil
	}
	if errno.Code(err) == unix.ENOTTY {
		return false, nil
	}

	return false, errno.Wrap("isatty", err)
}

// Fsync flushes the in-core state of fd to the storage device.
func Fsync(fd int) error {
	return errno.Wrap("fsync", unix.Fsync(fd))
}

// Fdatasync is [Fsync] without flushing metadata not needed for reading.
func Fdatasync(fd int) error {
	return errno.Wrap("fdatasync", unix.Fdatasync(fd))
}
