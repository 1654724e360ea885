package mapview

import "errors"

// Sentinel errors for argument validation. Handlers map these onto HTTP
// status codes at the API boundary.
var (
	// ErrInvalidArgument marks an option value that is not a structured
	// options object.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingField marks a structured option missing a required field.
	ErrMissingField = errors.New("missing field")
)
