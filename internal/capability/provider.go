//go:build linux

package capability

// Linux is an implementation wrapping the capability system calls, for
// injection into consumers that declare the subset they need.
type Linux struct{}

// Capget wraps around [Capget].
func (*Linux) Capget(pid int) (*Set, error) {
	return Capget(pid)
}

// Capset wraps around [Capset].
func (*Linux) Capset(pid int, s *Set) error {
	return Capset(pid, s)
}
