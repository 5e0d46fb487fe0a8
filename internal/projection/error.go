package projection

import "errors"

// ErrInvalidEnvName is an error that occurs when an environment variable name
// is empty or contains '=', either of which breaks the NAME=value convention
// of an environment array.
var ErrInvalidEnvName = errors.New("invalid environment variable name")
