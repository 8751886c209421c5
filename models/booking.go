package models

import (
	"strings"
	"time"
)

// ServiceMode is the delivery channel for a ritual.
type ServiceMode string

const (
	ModeVirtual  ServiceMode = "virtual"
	ModeInPerson ServiceMode = "in_person"
	ModeTemple   ServiceMode = "temple"
)

// ParseServiceMode normalizes client spellings. "online" and "video" are accepted as
// virtual; "offline" and "home" as in_person.
func ParseServiceMode(raw string) (ServiceMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "virtual", "online", "video":
		return ModeVirtual, true
	case "in_person", "in-person", "inperson", "offline", "home":
		return ModeInPerson, true
	case "temple":
		return ModeTemple, true
	}
	return "", false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// SankalpDetails is the free-text dedication metadata of a pooja.
type SankalpDetails struct {
	DevoteeName string   `bson:"devotee_name,omitempty" json:"devotee_name,omitempty"`
	FamilyNames []string `bson:"family_names" json:"family_names"`
	Gotra       string   `bson:"gotra,omitempty" json:"gotra,omitempty"`
	Nakshatra   string   `bson:"nakshatra,omitempty" json:"nakshatra,omitempty"`
	Notes       string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Booking is a pooja or temple-visit booking. A nil ProviderID means the booking is
// waiting for auto-assignment.
type Booking struct {
	ID           string         `bson:"id" json:"id"`
	PoojaID      string         `bson:"pooja_id" json:"pooja_id"`
	PoojaName    string         `bson:"pooja_name,omitempty" json:"pooja_name,omitempty"`
	TempleID     *string        `bson:"temple_id" json:"temple_id"`
	ProviderID   *string        `bson:"provider_id" json:"provider_id"`
	ProviderName string         `bson:"provider_name,omitempty" json:"provider_name,omitempty"`
	UserID       string         `bson:"user_id" json:"user_id"`
	ServiceMode  ServiceMode    `bson:"service_mode" json:"service_mode"`
	Date         string         `bson:"date" json:"date"`                               // "YYYY-MM-DD"
	TimeSlot     string         `bson:"time_slot,omitempty" json:"time_slot,omitempty"` // "HH:MM"
	Sankalp      SankalpDetails `bson:"sankalp_details" json:"sankalp_details"`
	TotalAmount  float64        `bson:"total_amount" json:"total_amount"`
	Status       BookingStatus  `bson:"status" json:"status"`
	AutoAssigned bool           `bson:"auto_assigned" json:"auto_assigned"`
	DeclinedBy   []string       `bson:"declined_by,omitempty" json:"declined_by,omitempty"` // Providers excluded from re-assignment.
	IsDeleted    bool           `bson:"is_deleted" json:"-"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}

// NeedsAssignment reports whether the booking still waits for a provider.
func (b Booking) NeedsAssignment() bool {
	return b.ProviderID == nil && b.Status == StatusPending
}
