// Package errors holds the reservation ledger's expected failure conditions.
// Each maps to one stable, user-facing message at the HTTP boundary.
package errors

import "errors"

var (
	// ErrMissingInput: identity or class id absent after token resolution.
	ErrMissingInput = errors.New("missing userId or classId")

	// ErrClassNotFound: the class document does not exist.
	ErrClassNotFound = errors.New("class not found")

	// ErrClassFull: enrolled has reached a non-zero capacity.
	ErrClassFull = errors.New("class is full")

	// ErrAlreadyBooked: the booking key already exists, detected either by
	// the pre-read or by the conditional create losing a race.
	ErrAlreadyBooked = errors.New("already booked")

	// ErrNotBooked: cancel on a booking that does not exist.
	ErrNotBooked = errors.New("not booked")
)
