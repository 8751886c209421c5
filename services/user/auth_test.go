package user

import (
	"context"
	"testing"
	"time"

	"poojaseva/config"
	"poojaseva/database/repository"
	"poojaseva/models"
	"poojaseva/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	byID map[string]models.User
}

func (m *memoryUsers) Create(ctx context.Context, u *models.User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newService(t *testing.T) *DefaultUserService {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenTTL = time.Hour
	t.Cleanup(func() { config.AppConfig = prev })
	return &DefaultUserService{Repo: &memoryUsers{byID: map[string]models.User{}}}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{FullName: "Anita Rao", Email: " Anita@Example.com ", Password: "Sankalp123"})
	require.NoError(t, err)
	assert.Equal(t, "anita@example.com", reg.Email)
	assert.Equal(t, models.RoleDevotee, reg.Role)

	claims, err := utils.ExtractClaims(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.Subject)

	login, err := svc.Login(ctx, "ANITA@example.com", "Sankalp123")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, login.ID)

	me, err := svc.CurrentUser(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anita Rao", me.FullName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	req := RegisterRequest{FullName: "Anita", Email: "anita@example.com", Password: "Sankalp123"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPasswordOrUnknownEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{FullName: "Anita", Email: "anita@example.com", Password: "Sankalp123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "anita@example.com", "wrong-Pass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "Sankalp123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyPasswordComplexity(t *testing.T) {
	for pw, ok := range map[string]bool{
		"short1A":      false,
		"alllower12":   false,
		"ALLUPPER12":   false,
		"NoDigitsHere": false,
		"Sankalp123":   true,
	} {
		err := verifyPasswordComplexity(pw)
		assert.Equal(t, ok, err == nil, pw)
	}
}
