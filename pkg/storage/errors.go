package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrNoDestination is returned when a writer is created without a place to
	// write to.
	ErrNoDestination = errors.New("no destination")
)
