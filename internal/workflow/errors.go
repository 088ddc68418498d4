// Package workflow holds the pure report lifecycle logic: the transition
// machine, the per-(actor, report) capability set and the visibility engine.
// Nothing here touches storage; callers persist the result atomically.
package workflow

import "errors"

// Sentinel errors forming the domain error taxonomy. Handlers map them to
// HTTP status codes; anything else is treated as a retryable persistence
// failure.
var (
	// ErrValidation marks user-correctable input problems (missing member
	// name, empty correction note, action not legal in the current state).
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks actions outside the actor's authority.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks actions that lost a race with the counterpart,
	// e.g. cancelling a submission the reviewer has already opened.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing report.
	ErrNotFound = errors.New("not found")
)
