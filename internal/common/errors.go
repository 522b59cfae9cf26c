package common

import "errors"

// Shared error kinds returned by the service packages. Handlers translate these
// into HTTP statuses at the boundary; nothing below the boundary knows about
// status codes.
var (
	// ErrRecordNotFound covers both genuinely absent records and records that
	// are deliberately hidden from the caller (unpublished blogs on public
	// paths look exactly like missing ones).
	ErrRecordNotFound = errors.New("record not found")

	// ErrForbidden means the record exists but the caller does not own it.
	// Only owner-scoped operations return this; public paths collapse it into
	// ErrRecordNotFound.
	ErrForbidden = errors.New("forbidden")

	// ErrEditConflict is returned when an optimistic-version update matches no
	// row because another request got there first.
	ErrEditConflict = errors.New("edit conflict")
)
