//go:build linux

package unistd

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unsafe"

	"github.com/desertwitch/nularray/internal/cstring"
	"github.com/desertwitch/nularray/internal/errno"
	"github.com/desertwitch/nularray/internal/nulterm"
	"github.com/desertwitch/nularray/internal/projection"
	"golang.org/x/sys/unix"
)

// defaultPath is searched by [Execvp] and [Execvpe] when PATH is unset.
const defaultPath = "/bin:/usr/bin"

// Execve replaces the current process image with the program at path. On
// success it does not return.
func Execve(path cstring.CString, argv, envp nulterm.Viewer[byte]) error {
	return errno.Wrap("execve", execve(path, argv.View(), envp.View()))
}

// Execv is [Execve] with the environment of the current process.
func Execv(path cstring.CString, argv nulterm.Viewer[byte]) error {
	envp, err := projection.Strings(os.Environ())
	if err != nil {
		return errno.Wrap("execv", err)
	}

	return errno.Wrap("execv", execve(path, argv.View(), envp.View()))
}

// Execvp is [Execvpe] with the environment of the current process.
func Execvp(file string, argv nulterm.Viewer[byte]) error {
	envp, err := projection.Strings(os.Environ())
	if err != nil {
		return errno.Wrap("execvp", err)
	}

	return errno.Wrap("execvp", execvpe(file, argv.View(), envp.View()))
}

// Execvpe replaces the current process image with file. A file without a
// slash is searched for in the PATH of the current process, not in envp.
// Candidates that do not exist or are not accessible are skipped; if none
// can be executed, EACCES is returned when one was found but denied,
// otherwise ENOENT.
func Execvpe(file string, argv, envp nulterm.Viewer[byte]) error {
	return errno.Wrap("execvpe", execvpe(file, argv.View(), envp.View()))
}

func execvpe(file string, argv, envp nulterm.Slice[byte]) error {
	if file == "" {
		return unix.ENOENT
	}

	if strings.ContainsRune(file, '/') {
		path, err := cstring.New(file)
		if err != nil {
			return err
		}

		return execve(path, argv, envp)
	}

	search, ok := os.LookupEnv("PATH")
	if !ok {
		search = defaultPath
	}

	denied := false
	for _, dir := range filepath.SplitList(search) {
		if dir == "" {
			dir = "."
		}

		path, err := cstring.New(filepath.Join(dir, file))
		if err != nil {
			return err
		}

		err = execve(path, argv, envp)
		switch errno.Code(err) {
		case unix.EACCES:
			denied = true
		case unix.ENOENT, unix.ENOTDIR, unix.ESTALE, unix.ENODEV, unix.ETIMEDOUT:
		default:
			return err
		}
	}

	if denied {
		return unix.EACCES
	}

	return unix.ENOENT
}

// execve hands path and both terminated arrays to the kernel. Everything the
// raw addresses point into is kept alive until the call has returned.
func execve(path cstring.CString, argv, envp nulterm.Slice[byte]) error {
	if argv.Words() == 0 || envp.Words() == 0 {
		return ErrNotTerminated
	}

	_, _, e := unix.Syscall(
		unix.SYS_EXECVE,
		uintptr(unsafe.Pointer(path.Ptr())),
		uintptr(argv.Pointer()),
		uintptr(envp.Pointer()),
	)

	runtime.KeepAlive(path)
	runtime.KeepAlive(argv)
	runtime.KeepAlive(envp)

	if e != 0 {
		return e
	}

	return errors.New("execve returned without error")
}
