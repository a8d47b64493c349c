// Package lifecycle holds the pure rules shared by orders and repair jobs:
// identifier formatting, totals, the status state machine, warranty windows
// and payment status. Nothing here touches storage or the clock; callers pass
// the current time in.
package lifecycle

import "errors"

var (
	// Validation errors: caller input problems, never retried.
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrInvalidWarranty     = errors.New("invalid warranty terms")

	// State machine errors: the requested status is not reachable.
	ErrIllegalTransition = errors.New("illegal status transition")

	// Concurrency errors: the record changed since it was read.
	ErrConcurrentModification = errors.New("concurrent modification")

	// Allocation errors: no identifier could be issued for this creation.
	ErrAllocationExhausted = errors.New("identifier allocation exhausted")
	ErrSequenceOverflow    = errors.New("sequence overflow")
)
