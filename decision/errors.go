// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decision

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrAlreadyVoted = errors.New("member has already voted")
	ErrUnauthorized = errors.New("not authorized")
)

// Code names the error class of err for responses and exit codes.
// Errors outside the taxonomy map to "InternalError".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNotFound):
		return "NotFoundError"
	case errors.Is(err, ErrInvalidState):
		return "InvalidStateError"
	case errors.Is(err, ErrAlreadyVoted):
		return "AlreadyVotedError"
	case errors.Is(err, ErrUnauthorized):
		return "AuthorizationError"
	default:
		return "InternalError"
	}
}
