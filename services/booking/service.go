package booking

import (
	"context"
	"time"

	bookingRepo "poojaseva/database/repository/booking"
	"poojaseva/models"
	"poojaseva/services/matching"
	"poojaseva/services/notification"

	"go.uber.org/zap"
)

// PoojaSource resolves ritual reference data.
type PoojaSource interface {
	GetPoojaByID(ctx context.Context, id string) (*models.Pooja, error)
}

// ProviderSource resolves a single provider.
type ProviderSource interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
}

// AssignmentQueue schedules background auto-assignment of a booking. The task
// must finish before deadline.
type AssignmentQueue interface {
	EnqueueAutoAssign(ctx context.Context, bookingID string, deadline time.Time) error
}

// BookingService covers submission, listing and the booking lifecycle.
type BookingService interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)
	ListMine(ctx context.Context, userID string) ([]models.Booking, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error)

	Accept(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)
	Decline(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)
	CheckIn(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)
	Complete(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)
	Cancel(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)
	Delete(ctx context.Context, id string, actor models.CurrentUser) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Poojas        PoojaSource
	Providers     ProviderSource
	Matching      matching.MatchingService
	Lists         ListCache // optional
	Queue         AssignmentQueue
	Notifications notification.NotificationService
	Logger        *zap.Logger
	Now           func() time.Time
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(*b, actor) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *DefaultBookingService) ListMine(ctx context.Context, userID string) ([]models.Booking, error) {
	if s.Lists != nil {
		if cached, ok, err := s.Lists.GetUserList(ctx, userID); err != nil {
			s.logger().Warn("user booking cache unavailable", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}
	bookings, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Lists != nil {
		if err := s.Lists.SetUserList(ctx, userID, bookings); err != nil {
			s.logger().Warn("failed to cache user bookings", zap.Error(err))
		}
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	if s.Lists != nil {
		if cached, ok, err := s.Lists.GetProviderList(ctx, providerID); err != nil {
			s.logger().Warn("provider booking cache unavailable", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}
	bookings, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if s.Lists != nil {
		if err := s.Lists.SetProviderList(ctx, providerID, bookings); err != nil {
			s.logger().Warn("failed to cache provider bookings", zap.Error(err))
		}
	}
	return bookings, nil
}

// invalidate drops every cached list the booking appears in. Failures are logged;
// the write they follow has already succeeded.
func (s *DefaultBookingService) invalidate(ctx context.Context, b models.Booking, extraProviders ...string) {
	if s.Lists != nil {
		providers := append([]string{deref(b.ProviderID)}, extraProviders...)
		if err := s.Lists.Invalidate(ctx, providers, []string{b.UserID}); err != nil {
			s.logger().Warn("failed to invalidate booking lists", zap.String("booking", b.ID), zap.Error(err))
		}
	}
	if s.Matching != nil {
		if err := s.Matching.InvalidateDirectory(ctx); err != nil {
			s.logger().Warn("failed to invalidate provider directory", zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func canView(b models.Booking, actor models.CurrentUser) bool {
	switch {
	case actor.Role == models.RoleAdmin:
		return true
	case b.UserID == actor.ID:
		return true
	case actor.ProviderID != "" && deref(b.ProviderID) == actor.ProviderID:
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
