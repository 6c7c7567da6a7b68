package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
)

type userStoreStub struct {
	users     map[string]*models.User
	lastLogin map[string]time.Time
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{
		users:     make(map[string]*models.User),
		lastLogin: make(map[string]time.Time),
	}
}

func (s *userStoreStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.users[email]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userStoreStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogin[id] = ts
	return nil
}

func seedUser(t *testing.T, store *userStoreStub, email, password string, role models.Role, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	store.users[email] = &models.User{
		ID:           "user-" + email,
		Email:        email,
		FullName:     "Test User",
		Role:         role,
		PasswordHash: string(hash),
		Active:       active,
	}
}

func newTestAuthService(store *userStoreStub) *AuthService {
	return NewAuthService(store, AuthConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "purchase-req-api",
	}, nil)
}

func TestLoginAndValidateTokenRoundTrip(t *testing.T) {
	store := newUserStoreStub()
	seedUser(t, store, "approver@example.com", "s3cret", models.RoleApprover, true)
	svc := newTestAuthService(store)

	result, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "approver@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, models.RoleApprover, result.User.Role)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-approver@example.com", claims.UserID)
	require.True(t, claims.CanReview())
	require.Contains(t, store.lastLogin, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newUserStoreStub()
	seedUser(t, store, "user@example.com", "s3cret", models.RoleRequester, true)
	svc := newTestAuthService(store)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(newUserStoreStub())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	store := newUserStoreStub()
	seedUser(t, store, "gone@example.com", "s3cret", models.RoleRequester, false)
	svc := newTestAuthService(store)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "gone@example.com",
		Password: "s3cret",
	})
	require.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	store := newUserStoreStub()
	seedUser(t, store, "user@example.com", "s3cret", models.RoleRequester, true)
	svc := newTestAuthService(store)

	result, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "user@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.AccessToken + "x")
	require.Error(t, err)
}
