package models

import "time"

// User is a devotee account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"` // devotee | provider | admin
	ProviderID   string    `bson:"provider_id,omitempty" json:"provider_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Roles.
const (
	RoleDevotee  = "devotee"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// CurrentUser is the identity attached to an authenticated request.
type CurrentUser struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProviderID string `json:"provider_id,omitempty"`
}
