package booking

import (
	"errors"
	"fmt"

	"poojaseva/database/repository"
	"poojaseva/models"
)

var (
	ErrNotFound  = repository.ErrNotFound
	ErrForbidden = errors.New("booking belongs to another account")
	// ErrSubmitFailed is the generic failure shown when the store rejects a booking.
	ErrSubmitFailed = errors.New("booking failed, please try again")
)

// ValidationError is raised before any store call when a request is incomplete.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// AvailabilityError reports that no provider can serve a ritual/temple request.
type AvailabilityError struct {
	PoojaID  string
	TempleID string
}

func (e *AvailabilityError) Error() string {
	if e.TempleID == "" {
		return fmt.Sprintf("no eligible providers for pooja %s", e.PoojaID)
	}
	return fmt.Sprintf("no eligible providers for pooja %s at temple %s", e.PoojaID, e.TempleID)
}

// TransitionError rejects a lifecycle action that the booking's status does not allow.
type TransitionError struct {
	BookingID string
	Action    string
	Status    models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking %s in status %s", e.Action, e.BookingID, e.Status)
}
