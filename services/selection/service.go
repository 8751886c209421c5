package selection

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectionService drives selection flows stored across requests.
type SelectionService interface {
	Start(ctx context.Context, userID, poojaID, templeID string) (*Selection, error)
	Get(ctx context.Context, id, userID string) (*Selection, error)
	ChooseAutoAssign(ctx context.Context, id, userID string) (*Selection, error)
	ChooseProvider(ctx context.Context, id, userID, providerID string) (*Selection, error)
	Reset(ctx context.Context, id, userID string) (*Selection, error)
	MarkSubmitted(ctx context.Context, s *Selection, bookingID string) error
	Discard(ctx context.Context, id, userID string) error
}

type DefaultSelectionService struct {
	Store  Store
	Logger *zap.Logger
}

func (s *DefaultSelectionService) Start(ctx context.Context, userID, poojaID, templeID string) (*Selection, error) {
	if strings.TrimSpace(poojaID) == "" {
		return nil, ErrPoojaRequired
	}
	sel := New(uuid.New().String(), userID, poojaID, templeID)
	if err := s.Store.Save(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// Get loads a flow owned by userID. Flows of other users read as missing.
func (s *DefaultSelectionService) Get(ctx context.Context, id, userID string) (*Selection, error) {
	sel, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sel.UserID != userID {
		return nil, ErrSelectionNotFound
	}
	return sel, nil
}

func (s *DefaultSelectionService) ChooseAutoAssign(ctx context.Context, id, userID string) (*Selection, error) {
	return s.apply(ctx, id, userID, (*Selection).ChooseAutoAssign)
}

func (s *DefaultSelectionService) ChooseProvider(ctx context.Context, id, userID, providerID string) (*Selection, error) {
	return s.apply(ctx, id, userID, func(sel *Selection) error {
		return sel.ChooseProvider(providerID)
	})
}

func (s *DefaultSelectionService) Reset(ctx context.Context, id, userID string) (*Selection, error) {
	return s.apply(ctx, id, userID, (*Selection).Reset)
}

func (s *DefaultSelectionService) MarkSubmitted(ctx context.Context, sel *Selection, bookingID string) error {
	if err := sel.MarkSubmitted(bookingID); err != nil {
		return err
	}
	if err := s.Store.Save(ctx, sel); err != nil {
		s.logger().Warn("failed to persist submitted selection",
			zap.String("selection", sel.ID), zap.String("booking", bookingID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultSelectionService) Discard(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}

func (s *DefaultSelectionService) apply(ctx context.Context, id, userID string, transition func(*Selection) error) (*Selection, error) {
	sel, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := transition(sel); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *DefaultSelectionService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
