package domain

import "errors"

var (
	// ErrValidation marks field-level input problems. Concrete failures carry the
	// field name and a human-readable reason.
	ErrValidation = errors.New("validation failed")

	// ErrStorage marks a failed read or write of a backing file. The operation
	// that hit it has been rolled back in memory.
	ErrStorage = errors.New("storage failure")

	ErrForbidden = errors.New("access denied")
)
