package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"poojaseva/database/repository"
	"poojaseva/models"

	"go.uber.org/zap"
)

// AssignmentResolver resolves bookings left without a provider.
type AssignmentResolver interface {
	// ResolveAssignment assigns the top-ranked eligible provider to a pending,
	// unassigned booking. Bookings that no longer need a provider are returned as is.
	ResolveAssignment(ctx context.Context, bookingID string) (*models.Booking, error)
	// UnassignedBookings lists pending bookings without a provider due on or before day.
	UnassignedBookings(ctx context.Context, day time.Time, limit int64) ([]models.Booking, error)
}

func (s *DefaultBookingService) ResolveAssignment(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.NeedsAssignment() {
		return b, nil
	}

	pooja, err := s.Poojas.GetPoojaByID(ctx, b.PoojaID)
	if err != nil {
		return nil, fmt.Errorf("load pooja: %w", err)
	}
	ranked, err := s.Matching.RankFor(ctx, *pooja, deref(b.TempleID), b.DeclinedBy)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, &AvailabilityError{PoojaID: b.PoojaID, TempleID: deref(b.TempleID)}
	}

	top := ranked[0].Provider
	updated, err := s.Repo.AssignProvider(ctx, b.ID, top.ID, top.DisplayName)
	if errors.Is(err, repository.ErrConflict) {
		// Resolved or cancelled concurrently.
		return s.Repo.GetByID(ctx, b.ID)
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, *updated)
	s.logger().Info("booking auto-assigned",
		zap.String("booking", updated.ID),
		zap.String("provider", top.ID),
		zap.String("tier", string(top.VerificationTier)),
		zap.Int("candidates", len(ranked)),
	)
	if s.Notifications != nil {
		if err := s.Notifications.NotifyAssignment(ctx, top, *updated); err != nil {
			s.logger().Warn("failed to notify assigned provider", zap.String("provider", top.ID), zap.Error(err))
		}
	}
	return updated, nil
}

func (s *DefaultBookingService) UnassignedBookings(ctx context.Context, day time.Time, limit int64) ([]models.Booking, error) {
	return s.Repo.ListUnassigned(ctx, day.Format(dateLayout), limit)
}
