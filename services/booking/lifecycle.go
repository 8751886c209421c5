package booking

import (
	"context"
	"errors"
	"slices"

	"poojaseva/database/repository"
	"poojaseva/models"

	"go.uber.org/zap"
)

// transition is one provider/admin lifecycle action.
type transition struct {
	action string
	from   []models.BookingStatus
	to     models.BookingStatus
}

var (
	acceptTransition   = transition{"accept", []models.BookingStatus{models.StatusPending}, models.StatusConfirmed}
	declineTransition  = transition{"decline", []models.BookingStatus{models.StatusPending}, models.StatusCancelled}
	checkInTransition  = transition{"check in", []models.BookingStatus{models.StatusConfirmed}, models.StatusInProgress}
	completeTransition = transition{"complete", []models.BookingStatus{models.StatusInProgress}, models.StatusCompleted}
	cancelTransition   = transition{"cancel", []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
	}, models.StatusCancelled}
)

type authorizer func(b models.Booking, actor models.CurrentUser) error

func assignedProvider(b models.Booking, actor models.CurrentUser) error {
	if actor.ProviderID == "" || deref(b.ProviderID) != actor.ProviderID {
		return ErrForbidden
	}
	return nil
}

func ownerOrAdmin(b models.Booking, actor models.CurrentUser) error {
	if actor.Role == models.RoleAdmin || b.UserID == actor.ID {
		return nil
	}
	return ErrForbidden
}

func participant(b models.Booking, actor models.CurrentUser) error {
	if canView(b, actor) {
		return nil
	}
	return ErrForbidden
}

func (s *DefaultBookingService) Accept(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error) {
	return s.apply(ctx, id, actor, acceptTransition, assignedProvider)
}

func (s *DefaultBookingService) CheckIn(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error) {
	return s.apply(ctx, id, actor, checkInTransition, assignedProvider)
}

func (s *DefaultBookingService) Complete(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error) {
	return s.apply(ctx, id, actor, completeTransition, assignedProvider)
}

func (s *DefaultBookingService) Cancel(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error) {
	return s.apply(ctx, id, actor, cancelTransition, participant)
}

// Decline cancels a directly booked request. An auto-assigned booking instead
// returns to the assignment pool with the declining provider excluded.
func (s *DefaultBookingService) Decline(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error) {
	b, err := s.load(ctx, id, actor, declineTransition, assignedProvider)
	if err != nil {
		return nil, err
	}
	if !b.AutoAssigned {
		return s.commit(ctx, b, declineTransition)
	}

	released, err := s.Repo.ReleaseProvider(ctx, id, actor.ProviderID)
	if errors.Is(err, repository.ErrConflict) {
		return nil, s.conflict(ctx, id, declineTransition)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *released, actor.ProviderID)
	if s.Queue != nil {
		if err := s.Queue.EnqueueAutoAssign(ctx, released.ID, deadlineFor(*released, s.now().Location())); err != nil {
			s.logger().Error("failed to re-enqueue auto-assign", zap.String("booking", released.ID), zap.Error(err))
		}
	}
	s.logger().Info("auto-assigned booking declined",
		zap.String("booking", id), zap.String("provider", actor.ProviderID))
	return released, nil
}

// Delete flags a booking as deleted. Only its devotee or an admin may do so.
func (s *DefaultBookingService) Delete(ctx context.Context, id string, actor models.CurrentUser) error {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(*b, actor); err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, *b)
	return nil
}

func (s *DefaultBookingService) apply(ctx context.Context, id string, actor models.CurrentUser, t transition, auth authorizer) (*models.Booking, error) {
	b, err := s.load(ctx, id, actor, t, auth)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, b, t)
}

// load fetches the booking and checks the actor and the current status.
func (s *DefaultBookingService) load(ctx context.Context, id string, actor models.CurrentUser, t transition, auth authorizer) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth(*b, actor); err != nil {
		return nil, err
	}
	if !slices.Contains(t.from, b.Status) {
		return nil, &TransitionError{BookingID: id, Action: t.action, Status: b.Status}
	}
	return b, nil
}

func (s *DefaultBookingService) commit(ctx context.Context, b *models.Booking, t transition) (*models.Booking, error) {
	updated, err := s.Repo.TransitionStatus(ctx, b.ID, t.from, t.to)
	if errors.Is(err, repository.ErrConflict) {
		return nil, s.conflict(ctx, b.ID, t)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *updated)
	s.logger().Info("booking status changed",
		zap.String("booking", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(updated.Status)),
	)
	return updated, nil
}

// conflict reports the status the booking moved to underneath the caller.
func (s *DefaultBookingService) conflict(ctx context.Context, id string, t transition) error {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return &TransitionError{BookingID: id, Action: t.action, Status: current.Status}
}
