//go:build linux

package unistd

import (
	"runtime"
	"unsafe"

	"github.com/desertwitch/nularray/internal/cstring"
	"github.com/desertwitch/nularray/internal/errno"
	"golang.org/x/sys/unix"
)

// Chdir changes the working directory to path.
func Chdir(path cstring.CString) error {
	_, _, e := unix.Syscall(unix.SYS_CHDIR, uintptr(unsafe.Pointer(path.Ptr())), 0, 0)
	runtime.KeepAlive(path)

	return errno.Wrap("chdir", errno.Of(e))
}

// Chroot changes the root directory to path.
func Chroot(path cstring.CString) error {
	_, _, e := unix.Syscall(unix.SYS_CHROOT, uintptr(unsafe.Pointer(path.Ptr())), 0, 0)
	runtime.KeepAlive(path)

	return errno.Wrap("chroot", errno.Of(e))
}

// Unlink removes the name path from the filesystem.
func Unlink(path cstring.CString) error {
	dirfd := unix.AT_FDCWD
	_, _, e := unix.Syscall(unix.SYS_UNLINKAT, uintptr(dirfd), uintptr(unsafe.Pointer(path.Ptr())), 0)
	runtime.KeepAlive(path)

	return errno.Wrap("unlink", errno.Of(e))
}

// PivotRoot moves the root mount to putOld and makes newRoot the root mount.
func PivotRoot(newRoot, putOld cstring.CString) error {
	_, _, e := unix.Syscall(
		unix.SYS_PIVOT_ROOT,
		uintptr(unsafe.Pointer(newRoot.Ptr())),
		uintptr(unsafe.Pointer(putOld.Ptr())),
		0,
	)
	runtime.KeepAlive(newRoot)
	runtime.KeepAlive(putOld)

	return errno.Wrap("pivot_root", errno.Of(e))
}

// Sethostname sets the hostname of the UTS namespace to name.
func Sethostname(name []byte) error {
	return errno.Wrap("sethostname", unix.Sethostname(name))
}

// Gethostname returns the hostname of the UTS namespace.
func Gethostname() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", errno.Wrap("gethostname", err)
	}

	return unix.ByteSliceToString(uts.Nodename[:]), nil
}
