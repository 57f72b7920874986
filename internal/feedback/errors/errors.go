// Package errors holds the feedback intake's expected failures. Handlers
// match on these to choose the user-facing message and status.
package errors

import "errors"

var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrAttachmentTooBig = errors.New("attachment too large")
	ErrTotalTooBig      = errors.New("total attachments too large")
)
