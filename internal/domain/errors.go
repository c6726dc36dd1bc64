package domain

import "errors"

var (
	// ErrValidation indicates a request failed field-level validation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates a state-machine precondition was
	// violated, e.g. approving a change order that is no longer pending.
	ErrInvalidTransition = errors.New("invalid state transition")
)
