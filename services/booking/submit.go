package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"poojaseva/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitRequest is a finalized booking intent. Exactly one of ProviderID and
// AutoAssign must be set unless TempleVisit is true; temple visits need no provider.
type SubmitRequest struct {
	UserID      string
	PoojaID     string
	TempleID    string
	ServiceMode string
	Date        string
	TimeSlot    string
	ProviderID  *string
	AutoAssign  bool
	TempleVisit bool
	Sankalp     models.SankalpDetails
}

// draft is a request that passed local validation.
type draft struct {
	mode        models.ServiceMode
	scheduledAt time.Time
	sankalp     models.SankalpDetails
	providerID  string // trimmed; empty means auto-assign or temple visit
}

// Submit validates the request, resolves the price and creates the booking in a
// single store write. Validation failures never reach a store.
func (s *DefaultBookingService) Submit(ctx context.Context, req SubmitRequest) (*models.Booking, error) {
	d, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	pooja, err := s.Poojas.GetPoojaByID(ctx, req.PoojaID)
	if err != nil {
		return nil, fmt.Errorf("load pooja: %w", err)
	}
	if !pooja.IsActive {
		return nil, newValidationError("pooja_id", "this pooja is not currently offered")
	}

	var provider *models.Provider
	if d.providerID != "" {
		provider, err = s.Providers.GetByID(ctx, d.providerID)
		if errors.Is(err, ErrNotFound) {
			return nil, newValidationError("provider_id", "the selected priest is no longer available")
		}
		if err != nil {
			return nil, fmt.Errorf("load provider: %w", err)
		}
		if !provider.IsVerified || !provider.IsAvailable || provider.IsDeleted {
			return nil, newValidationError("provider_id", "the selected priest is no longer available")
		}
	}

	quote := ResolvePrice(*pooja, d.mode)
	now := s.now()
	b := &models.Booking{
		ID:          uuid.New().String(),
		PoojaID:     pooja.ID,
		PoojaName:   pooja.Name,
		UserID:      req.UserID,
		ServiceMode: d.mode,
		Date:        strings.TrimSpace(req.Date),
		TimeSlot:    strings.TrimSpace(req.TimeSlot),
		Sankalp:     d.sankalp,
		TotalAmount: quote.Amount,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.TempleID != "" {
		templeID := req.TempleID
		b.TempleID = &templeID
	}
	switch {
	case req.TempleVisit:
		b.Status = models.StatusConfirmed
	case provider != nil:
		providerID := provider.ID
		b.ProviderID = &providerID
		b.ProviderName = provider.DisplayName
	default:
		b.AutoAssigned = true
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		s.logger().Error("booking create failed",
			zap.String("user", req.UserID), zap.String("pooja", req.PoojaID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	s.logger().Info("booking created",
		zap.String("booking", b.ID),
		zap.String("status", string(b.Status)),
		zap.Bool("autoAssign", b.AutoAssigned),
		zap.Float64("amount", b.TotalAmount),
		zap.String("priceSource", quote.Source),
	)

	s.invalidate(ctx, *b)
	if b.NeedsAssignment() && s.Queue != nil {
		if err := s.Queue.EnqueueAutoAssign(ctx, b.ID, d.scheduledAt); err != nil {
			s.logger().Error("failed to enqueue auto-assign", zap.String("booking", b.ID), zap.Error(err))
		}
	}
	if provider != nil && s.Notifications != nil {
		if err := s.Notifications.NotifyNewBooking(ctx, *provider, *b); err != nil {
			s.logger().Warn("failed to notify provider", zap.String("provider", provider.ID), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) prepare(req SubmitRequest) (*draft, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, newValidationError("user", "please sign in to book")
	}
	if strings.TrimSpace(req.PoojaID) == "" {
		return nil, newValidationError("pooja_id", "pooja is required")
	}

	var mode models.ServiceMode
	if req.TempleVisit {
		mode = models.ModeTemple
	} else {
		m, ok := models.ParseServiceMode(req.ServiceMode)
		if !ok {
			return nil, newValidationError("service_mode", "service mode must be virtual, in_person or temple")
		}
		mode = m
	}
	if mode == models.ModeTemple && strings.TrimSpace(req.TempleID) == "" {
		return nil, newValidationError("temple_id", "temple is required for temple bookings")
	}

	var providerID string
	if !req.TempleVisit {
		providerID = strings.TrimSpace(deref(req.ProviderID))
		manual := providerID != ""
		switch {
		case manual && req.AutoAssign:
			return nil, newValidationError("provider_id", "choose either a priest or auto-assign, not both")
		case !manual && !req.AutoAssign:
			return nil, newValidationError("provider_id", "please choose a priest or enable auto-assign")
		}
	}

	sankalp := normalizeSankalp(req.Sankalp)
	if err := validateSankalp(sankalp); err != nil {
		return nil, err
	}

	day, err := validateDate(req.Date, s.now())
	if err != nil {
		return nil, err
	}
	return &draft{
		mode:        mode,
		scheduledAt: scheduledAt(day, req.TimeSlot),
		sankalp:     sankalp,
		providerID:  providerID,
	}, nil
}

// scheduledAt combines the booking day with its "HH:MM" slot. Without a usable
// slot the end of the day is used.
func scheduledAt(day time.Time, slot string) time.Time {
	if t, err := time.Parse("15:04", strings.TrimSpace(slot)); err == nil {
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, day.Location())
}
