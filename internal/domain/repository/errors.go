package repository

import "errors"

// Sentinel errors shared by all repository implementations. Handlers map
// these to HTTP status codes at the boundary.
var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when an insert violates a uniqueness
	// constraint (duplicate email/username, duplicate movie title). The
	// failed write is fully rolled back before this is returned.
	ErrAlreadyExists = errors.New("already exists")
)
