//go:build linux

// Package capability packs Linux capability sets into the two 32-bit words per
// set that capget(2) and capset(2) exchange with the kernel.
package capability

import (
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/sys/unix"
)

// Flags is a set of capabilities, bit n standing for capability number n.
type Flags uint64

const (
	CapChown Flags = 1 << iota
	CapDacOverride
	CapDacReadSearch
	CapFowner
	CapFsetid
	CapKill
	CapSetgid
	CapSetuid
	CapSetpcap
	CapLinuxImmutable
	CapNetBindService
	CapNetBroadcast
	CapNetAdmin
	CapNetRaw
	CapIpcLock
	CapIpcOwner
	CapSysModule
	CapSysRawio
	CapSysChroot
	CapSysPtrace
	CapSysPacct
	CapSysAdmin
	CapSysBoot
	CapSysNice
	CapSysResource
	CapSysTime
	CapSysTtyConfig
	CapMknod
	CapLease
	CapAuditWrite
	CapAuditControl
	CapSetfcap
	CapMacOverride
	CapMacAdmin
	CapSyslog
	CapWakeAlarm
	CapBlockSuspend
	CapAuditRead
)

// All holds every capability known to this package.
const All = CapAuditRead<<1 - 1

//nolint:gochecknoglobals
var names = [...]string{
	"CAP_CHOWN", "CAP_DAC_OVERRIDE", "CAP_DAC_READ_SEARCH", "CAP_FOWNER",
	"CAP_FSETID", "CAP_KILL", "CAP_SETGID", "CAP_SETUID", "CAP_SETPCAP",
	"CAP_LINUX_IMMUTABLE", "CAP_NET_BIND_SERVICE", "CAP_NET_BROADCAST",
	"CAP_NET_ADMIN", "CAP_NET_RAW", "CAP_IPC_LOCK", "CAP_IPC_OWNER",
	"CAP_SYS_MODULE", "CAP_SYS_RAWIO", "CAP_SYS_CHROOT", "CAP_SYS_PTRACE",
	"CAP_SYS_PACCT", "CAP_SYS_ADMIN", "CAP_SYS_BOOT", "CAP_SYS_NICE",
	"CAP_SYS_RESOURCE", "CAP_SYS_TIME", "CAP_SYS_TTY_CONFIG", "CAP_MKNOD",
	"CAP_LEASE", "CAP_AUDIT_WRITE", "CAP_AUDIT_CONTROL", "CAP_SETFCAP",
	"CAP_MAC_OVERRIDE", "CAP_MAC_ADMIN", "CAP_SYSLOG", "CAP_WAKE_ALARM",
	"CAP_BLOCK_SUSPEND", "CAP_AUDIT_READ",
}

// String returns the capability names in ascending order, joined by commas.
// Bits beyond the known capabilities are shown by number.
func (f Flags) String() string {
	if f == 0 {
		return ""
	}

	parts := make([]string, 0, bits.OnesCount64(uint64(f)))
	for rest := uint64(f); rest != 0; rest &= rest - 1 {
		n := bits.TrailingZeros64(rest)
		if n < len(names) {
			parts = append(parts, names[n])
		} else {
			parts = append(parts, fmt.Sprintf("CAP_%d", n))
		}
	}

	return strings.Join(parts, ",")
}

// ParseFlags parses a comma separated list of capability names. Names are
// case insensitive and the CAP_ prefix is optional.
func ParseFlags(s string) (Flags, error) {
	var f Flags

	for _, field := range strings.Split(s, ",") {
		field = strings.ToUpper(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		if !strings.HasPrefix(field, "CAP_") {
			field = "CAP_" + field
		}

		found := false
		for n, name := range names {
			if name == field {
				f |= 1 << n
				found = true

				break
			}
		}
		if !found {
			return 0, fmt.Errorf("(capability-parse) %w: %q", ErrUnknownCapability, field)
		}
	}

	return f, nil
}

// Kind selects one of the three sets of a process.
type Kind int

const (
	Effective Kind = iota
	Permitted
	Inheritable
)

// Set holds the effective, permitted and inheritable capability sets of a
// process in kernel layout: data[0] carries bits 0-31, data[1] bits 32-63.
type Set struct {
	data [2]unix.CapUserData
}

// Get returns the capabilities of kind.
func (s *Set) Get(kind Kind) Flags {
	var lo, hi uint32

	switch kind {
	case Effective:
		lo, hi = s.data[0].Effective, s.data[1].Effective
	case Permitted:
		lo, hi = s.data[0].Permitted, s.data[1].Permitted
	case Inheritable:
		lo, hi = s.data[0].Inheritable, s.data[1].Inheritable
	}

	return Flags(uint64(hi)<<32 | uint64(lo))
}

// Put replaces the capabilities of kind.
func (s *Set) Put(kind Kind, f Flags) {
	lo, hi := uint32(f), uint32(f>>32)

	switch kind {
	case Effective:
		s.data[0].Effective, s.data[1].Effective = lo, hi
	case Permitted:
		s.data[0].Permitted, s.data[1].Permitted = lo, hi
	case Inheritable:
		s.data[0].Inheritable, s.data[1].Inheritable = lo, hi
	}
}

// PutAll replaces all three sets with f.
func (s *Set) PutAll(f Flags) {
	s.Put(Effective, f)
	s.Put(Permitted, f)
	s.Put(Inheritable, f)
}

// Capget returns the capability sets of the thread pid, 0 meaning the caller.
func Capget(pid int) (*Set, error) {
	hdr := unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3, Pid: int32(pid)} //nolint:gosec

	s := &Set{}
	if err := unix.Capget(&hdr, &s.data[0]); err != nil {
		return nil, fmt.Errorf("(capability-capget) %w", err)
	}

	return s, nil
}

// Capset applies s to the thread pid, 0 meaning the caller.
//
// Capabilities are per thread; callers that rely on the result should lock
// the goroutine to its thread.
func Capset(pid int, s *Set) error {
	hdr := unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3, Pid: int32(pid)} //nolint:gosec

	if err := unix.Capset(&hdr, &s.data[0]); err != nil {
		return fmt.Errorf("(capability-capset) %w", err)
	}

	return nil
}
