package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"poojaseva/config"
	"poojaseva/database/repository"
	"poojaseva/models"
	"poojaseva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// verifyPasswordComplexity requires eight characters with upper case, lower case and a digit.
func verifyPasswordComplexity(pw string) error {
	switch {
	case len(pw) < 8:
		return &InputError{Field: "password", Message: "password must be at least 8 characters long"}
	case !hasUpper.MatchString(pw):
		return &InputError{Field: "password", Message: "password must include at least one uppercase letter"}
	case !hasLower.MatchString(pw):
		return &InputError{Field: "password", Message: "password must include at least one lowercase letter"}
	case !hasNumber.MatchString(pw):
		return &InputError{Field: "password", Message: "password must include at least one number"}
	}
	return nil
}

func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.FullName)
	if email == "" || name == "" {
		return nil, &InputError{Field: "email", Message: "full name and email are required"}
	}
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		FullName:     name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleDevotee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		s.logger().Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	s.logger().Info("user registered", zap.String("user", u.ID))
	return s.issue(u)
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *DefaultUserService) CurrentUser(ctx context.Context, id string) (*models.CurrentUser, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CurrentUser{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		ProviderID: u.ProviderID,
	}, nil
}

func (s *DefaultUserService) issue(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(utils.TokenClaims{Subject: u.ID, Email: u.Email, Role: u.Role}, config.AppConfig.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{
		ID:       u.ID,
		Token:    token,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}
