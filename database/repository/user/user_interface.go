package userRepo

import (
	"context"

	"poojaseva/models"
)

// UserRepository defines methods for devotee account access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
