package entity

import "errors"

// Domain error taxonomy. Use cases wrap these with fmt.Errorf("%w: ...")
// so handlers can map them to HTTP statuses with errors.Is.
var (
	// ErrValidation marks malformed input, e.g. missing rejection notes
	// or duplicate image display orders.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks a failed capability check.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks an absent listing or user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks a verification state machine guard violation.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConcurrentModification marks an optimistic concurrency conflict.
	// Callers may retry; the service never retries state transitions itself.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrTimeout marks a search that exceeded its deadline.
	ErrTimeout = errors.New("deadline exceeded")
)
