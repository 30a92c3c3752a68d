/*
errors.go - Centralized error types for the subscription engine

PURPOSE:
  All sentinel errors in one place. The store and API layers wrap these with
  their own context; handlers map them onto HTTP status codes through the
  helpers at the bottom.

NOTE:
  The resolver and projector never produce errors. Validation failures
  (RuleError, validator.go) are the only errors originating inside the
  engine itself; everything else here belongs to the surrounding shell.
*/
package subscription

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidSubscription is the root of every validation failure.
	// RuleError unwraps to it.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when a referenced subscription
	// does not exist in the store.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrConcurrentModification is returned when an optimistic version
	// check detects that the document changed underneath an update.
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrSubscriptionStopped is returned when a mutation targets a stopped
	// subscription. Stopped is terminal.
	ErrSubscriptionStopped = errors.New("subscription is stopped")

	// ErrNoOpenPause is returned when a resume finds no open pause
	// interval to close.
	ErrNoOpenPause = errors.New("no open pause interval")
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is the caller's fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidSubscription) ||
		errors.Is(err, ErrSubscriptionStopped) ||
		errors.Is(err, ErrNoOpenPause)
}

// IsNotFound reports whether the error indicates a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSubscriptionNotFound)
}

// IsConflict reports whether the error indicates a lost-update conflict
// that the caller may retry after re-reading.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
