package bookingRepo

import (
	"context"

	"poojaseva/models"
)

// BookingRepository defines methods for booking data access. Status changes are
// conditional on the current status so concurrent mutations cannot skip a state.
type BookingRepository interface {
	// Create inserts a new booking in a single write.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking that has not been soft-deleted.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser returns a devotee's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListByProvider returns the bookings assigned to a provider, soonest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	// ListUnassigned returns pending bookings without a provider dated on or before the given day.
	ListUnassigned(ctx context.Context, onOrBefore string, limit int64) ([]models.Booking, error)
	// TransitionStatus moves a booking to `to` if its status is one of `from`.
	TransitionStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.Booking, error)
	// AssignProvider sets the provider of a pending, unassigned booking.
	AssignProvider(ctx context.Context, id, providerID, providerName string) (*models.Booking, error)
	// ReleaseProvider clears an auto-assigned provider from a pending booking and
	// records that provider as declined.
	ReleaseProvider(ctx context.Context, id, providerID string) (*models.Booking, error)
	// SoftDelete flags the booking as deleted.
	SoftDelete(ctx context.Context, id string) error
}
