package store

import "errors"

var (
	// ErrDuplicateEmail is returned when a registration reuses an
	// existing user's email.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrNotFound is returned when a playlist does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("playlist not found")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)
