//go:build linux

package capability

import "errors"

// ErrUnknownCapability is an error that occurs when a capability name cannot
// be resolved to a known capability.
var ErrUnknownCapability = errors.New("unknown capability")
