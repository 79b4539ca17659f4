package storage

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'habitlog init' first")
)

// ErrDuplicate is returned when a write collides with a unique constraint,
// such as a second report for the same habit and day.
var ErrDuplicate = errors.New("duplicate record")
