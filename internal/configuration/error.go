package configuration

import "errors"

// ErrInvalidAssignment is an error that occurs when an environment override
// is not of the form NAME=value.
var ErrInvalidAssignment = errors.New("invalid environment assignment")
