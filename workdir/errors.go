package workdir

import "errors"

// Sentinel errors for package workdir.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Suffix generation errors
	ErrInvalidLength = errors.New("suffix length must be at least 1")
	ErrEmptyBase     = errors.New("base directory must not be empty")

	// Session errors
	ErrNotSession = errors.New("directory has no session manifest")
)
