package domain

import "errors"

// Shared error taxonomy. Handlers map these to HTTP codes; everything else
// that bubbles up from the store is treated as transient.
var (
	ErrBikeNotFound      = errors.New("bike not found")
	ErrRentalNotFound    = errors.New("rental not found")
	ErrBikeUnavailable   = errors.New("bike is not available")
	ErrDuplicateRental   = errors.New("you already have a pending request for this bike")
	ErrDateConflict      = errors.New("bike not available for selected dates")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCancelNotPending  = errors.New("can only cancel pending rentals")
	ErrInvalidInput      = errors.New("invalid input")
)
