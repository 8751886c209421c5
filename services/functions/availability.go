package functions

import (
	"context"
	"encoding/json"
	"fmt"

	"poojaseva/models"
)

const fnAvailablePoojaSlots = "getAvailablePoojaSlots"

// AvailabilityService exposes the remote slot computation.
type AvailabilityService interface {
	GetAvailablePoojaSlots(ctx context.Context, poojaID, date string, mode models.ServiceMode) ([]models.Slot, error)
}

type RemoteAvailabilityService struct {
	Functions Invoker
}

type slotsRequest struct {
	PoojaID     string             `json:"pooja_id"`
	Date        string             `json:"date"`
	ServiceMode models.ServiceMode `json:"service_mode"`
}

// GetAvailablePoojaSlots accepts either a bare slot list or {"slots": [...]}.
func (s *RemoteAvailabilityService) GetAvailablePoojaSlots(ctx context.Context, poojaID, date string, mode models.ServiceMode) ([]models.Slot, error) {
	data, err := s.Functions.Invoke(ctx, fnAvailablePoojaSlots, slotsRequest{
		PoojaID:     poojaID,
		Date:        date,
		ServiceMode: mode,
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return []models.Slot{}, nil
	}

	var slots []models.Slot
	if err := json.Unmarshal(data, &slots); err == nil {
		return slots, nil
	}
	var wrapped struct {
		Slots []models.Slot `json:"slots"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if wrapped.Slots == nil {
		return []models.Slot{}, nil
	}
	return wrapped.Slots, nil
}
