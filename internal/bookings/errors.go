package bookings

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound  = errors.New("Listing not found")
	ErrBookingNotFound  = errors.New("Booking not found")
	ErrNotAuthorized    = errors.New("Not authorized")
	ErrInvalidDateRange = errors.New("Check-out must be after check-in")
	ErrDatesUnavailable = errors.New("Dates not available")
	ErrAlreadyCancelled = errors.New("Booking already cancelled")
	ErrCancelCompleted  = errors.New("Cannot cancel completed booking")
	ErrNotConfirmed     = errors.New("Only confirmed bookings can be completed")
	ErrNotCheckedOut    = errors.New("Cannot complete booking before check-out")
)

// CapacityError carries the listing's guest cap for the error message.
type CapacityError struct {
	MaxGuests int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Maximum %d guests allowed", e.MaxGuests)
}
