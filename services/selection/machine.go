package selection

import (
	"errors"
	"strings"
	"time"
)

// State is the provider-intent state of a booking flow.
type State string

const (
	StateNoneSelected   State = "none_selected"
	StateAutoAssign     State = "auto_assign_chosen"
	StateManualProvider State = "manual_provider_chosen"
	StateSubmitted      State = "submitted"
)

var (
	ErrNothingSelected   = errors.New("please choose a priest or enable auto-assign")
	ErrProviderRequired  = errors.New("provider id is required")
	ErrAlreadySubmitted  = errors.New("selection has already been submitted")
	ErrSelectionNotFound = errors.New("selection session not found or expired")
	ErrPoojaRequired     = errors.New("pooja id is required")
)

// Selection holds the devotee's provider intent for one booking flow. At most
// one intent is active: choosing auto-assign clears the provider and choosing a
// provider clears auto-assign.
type Selection struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PoojaID    string    `json:"pooja_id"`
	TempleID   string    `json:"temple_id,omitempty"`
	State      State     `json:"state"`
	ProviderID string    `json:"provider_id,omitempty"`
	BookingID  string    `json:"booking_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New starts a flow in NoneSelected.
func New(id, userID, poojaID, templeID string) *Selection {
	now := time.Now()
	return &Selection{
		ID:        id,
		UserID:    userID,
		PoojaID:   poojaID,
		TempleID:  templeID,
		State:     StateNoneSelected,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChooseAutoAssign activates auto-assign and drops any manual choice.
func (s *Selection) ChooseAutoAssign() error {
	if s.State == StateSubmitted {
		return ErrAlreadySubmitted
	}
	s.State = StateAutoAssign
	s.ProviderID = ""
	s.touch()
	return nil
}

// ChooseProvider selects a named provider and drops auto-assign.
func (s *Selection) ChooseProvider(providerID string) error {
	if s.State == StateSubmitted {
		return ErrAlreadySubmitted
	}
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return ErrProviderRequired
	}
	s.State = StateManualProvider
	s.ProviderID = providerID
	s.touch()
	return nil
}

// Reset returns an unsubmitted flow to NoneSelected.
func (s *Selection) Reset() error {
	if s.State == StateSubmitted {
		return ErrAlreadySubmitted
	}
	s.State = StateNoneSelected
	s.ProviderID = ""
	s.touch()
	return nil
}

// Intent returns the provider to book, or nil for auto-assign. It fails when no
// intent is active, so callers can reject a submission before touching any store.
func (s *Selection) Intent() (*string, error) {
	switch s.State {
	case StateAutoAssign:
		return nil, nil
	case StateManualProvider:
		if s.ProviderID == "" {
			return nil, ErrNothingSelected
		}
		id := s.ProviderID
		return &id, nil
	case StateSubmitted:
		return nil, ErrAlreadySubmitted
	default:
		return nil, ErrNothingSelected
	}
}

// MarkSubmitted moves the flow to its terminal state.
func (s *Selection) MarkSubmitted(bookingID string) error {
	if _, err := s.Intent(); err != nil {
		return err
	}
	s.State = StateSubmitted
	s.BookingID = bookingID
	s.touch()
	return nil
}

func (s *Selection) AutoAssign() bool {
	return s.State == StateAutoAssign
}

func (s *Selection) touch() {
	s.UpdatedAt = time.Now()
}
