package repository

import "errors"

// Sentinel errors shared by all repositories. Services and their in-memory
// test fakes return the same values so callers can match with errors.Is.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on unique-constraint violations
	// (duplicate username/email, duplicate pending enrollment request).
	ErrDuplicate = errors.New("record already exists")
)
