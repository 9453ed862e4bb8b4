package entities

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Both store errors are safe to retry: every ledger write is an
	// idempotent upsert or delete.
	ErrStoreConflict    = errors.New("store conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreConflict) || errors.Is(err, ErrStoreUnavailable)
}
