package projection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertwitch/nularray/internal/cstring"
)

// CStrings is the projection used for argv and envp: owned NUL-terminated
// strings and the terminated array of their first-byte addresses.
type CStrings = Vec[cstring.CString, byte]

// FromCStrings projects already converted strings.
func FromCStrings(cs []cstring.CString) *CStrings {
	return MapFrom[cstring.CString, byte](cs)
}

// Strings converts ss into NUL-terminated strings and projects them, in
// order. Position 0 of an argument vector is the program name as the callee
// sees it.
func Strings(ss []string) (*CStrings, error) {
	cs, err := cstring.FromStrings(ss)
	if err != nil {
		return nil, fmt.Errorf("(projection-strings) %w", err)
	}

	return FromCStrings(cs), nil
}

// Environ projects an environment map as NAME=value entries, sorted by name.
// A name that is empty or holds '=' is reported as [ErrInvalidEnvName].
func Environ(env map[string]string) (*CStrings, error) {
	names := make([]string, 0, len(env))
	for name := range env {
		if name == "" || strings.ContainsRune(name, '=') {
			return nil, fmt.Errorf("(projection-environ) %w: %q", ErrInvalidEnvName, name)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, name+"="+env[name])
	}

	return Strings(entries)
}

// Lookup returns the value of name in an environment projection, comparing
// the NAME= prefix of every entry the way the C library does.
func Lookup(env *CStrings, name string) (string, bool) {
	prefix := name + "="
	for _, e := range env.sources {
		if s := e.String(); strings.HasPrefix(s, prefix) {
			return s[len(prefix):], true
		}
	}

	return "", false
}
