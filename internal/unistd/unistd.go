//go:build linux

// Package unistd wraps process, descriptor and path system calls. Calls that
// take argument or environment vectors accept terminated arrays from package
// nulterm, calls that take a single path accept a [cstring.CString]. Errors
// carry the failing call as a prefix and the errno as the wrapped cause.
package unistd

import (
	"github.com/desertwitch/nularray/internal/errno"
	"golang.org/x/sys/unix"
)

// Getpid returns the process ID of the caller. It cannot fail.
func Getpid() int {
	return unix.Getpid()
}

// Getppid returns the process ID of the parent of the caller. It cannot fail.
func Getppid() int {
	return unix.Getppid()
}

// Setpgid sets the process group of pid to pgid.
func Setpgid(pid, pgid int) error {
	return errno.Wrap("setpgid", unix.Setpgid(pid, pgid))
}

// Setuid sets the user ID of all threads of the process.
func Setuid(uid int) error {
	return errno.Wrap("setuid", unix.Setuid(uid))
}

// Setgid sets the group ID of all threads of the process.
func Setgid(gid int) error {
	return errno.Wrap("setgid", unix.Setgid(gid))
}

// Getgroups returns the supplementary group IDs of the caller.
func Getgroups() ([]int, error) {
	gids, err := unix.Getgroups()

	return gids, errno.Wrap("getgroups", err)
}

// Setgroups replaces the supplementary group IDs of the caller.
func Setgroups(gids []int) error {
	return errno.Wrap("setgroups", unix.Setgroups(gids))
}
