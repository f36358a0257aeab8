package domain

import "errors"

// Domain errors
var (
	// Booking errors
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")

	// Inventory errors
	ErrFlightNotFound   = errors.New("flight not found")
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrSeatUnavailable  = errors.New("seat unavailable")

	// ErrFlightBusy means the flight row lock could not be acquired within
	// the configured timeout. Retryable by the caller.
	ErrFlightBusy = errors.New("flight inventory busy")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvalidInput marks precondition failures on the request itself,
	// before any inventory is touched.
	ErrInvalidInput = errors.New("invalid input")
)
