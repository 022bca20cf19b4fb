package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers.
var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("seat no longer available")
	ErrGroupNotFound       = errors.New("reservation group not found")
	ErrForbidden           = errors.New("not allowed to access this reservation")

	// Idempotency errors
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")
	ErrDuplicateRequest     = errors.New("request with this idempotency key is already in progress")

	// Operation errors
	ErrStoreUnavailable = errors.New("reservation store unavailable")
)
