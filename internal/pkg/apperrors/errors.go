// Package apperrors defines the typed error taxonomy shared by all
// services. Usecases return these (possibly wrapped with %w) and
// handlers map them to HTTP statuses with errors.Is.
package apperrors

import "errors"

var (
	// ErrInvalidInput marks a malformed request, rejected before any
	// state change.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a reference to an order or driver that does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed marks a transition whose guard did not hold
	// against current persisted state. Recoverable: the caller should
	// refresh and possibly retry.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrOrderTaken is the accept-race loss: the order left the pending
	// state before the claim landed. Clients show "order no longer
	// available" and request another offer.
	ErrOrderTaken = errors.New("order no longer available")

	// ErrOfferSuperseded marks a claim carrying a stale offer round.
	ErrOfferSuperseded = errors.New("offer round superseded")

	// ErrUnauthorized marks a caller that is not entitled to perform
	// the transition. Never retried automatically.
	ErrUnauthorized = errors.New("caller not authorized for this operation")

	// ErrDependencyUnavailable marks a storage or geo-lookup failure.
	// No partial writes happened; the operation is safely retryable.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// IsPreconditionFailed reports whether err is any of the
// precondition-failure family.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed) ||
		errors.Is(err, ErrOrderTaken) ||
		errors.Is(err, ErrOfferSuperseded)
}
