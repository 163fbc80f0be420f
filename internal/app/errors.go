package app

import "errors"

// Error types for viewer operations.
var (
	// ErrNoRepository indicates a git-backed operation was requested
	// without an open repository.
	ErrNoRepository = errors.New("no git repository")

	// ErrNoBuffer indicates an operation needs a loaded buffer.
	ErrNoBuffer = errors.New("no buffer loaded")
)
