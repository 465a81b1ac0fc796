package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	service  *AuthServiceImpl
	users    *fakeCustomerRepo
	collabs  *fakeCollaboratorRepo
	admins   *fakeAdminUserRepo
	attempts *fakeLoginAttemptRepo
	cfg      *config.Config
}

func newAuthFixture() *authFixture {
	users := newFakeCustomerRepo()
	collabs := newFakeCollaboratorRepo()
	admins := newFakeAdminUserRepo()
	attempts := newFakeLoginAttemptRepo()
	cfg := &config.Config{
		JWT:  config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
		Auth: config.AuthConfig{MaxLoginFailures: 3, LockoutMinutes: 15},
	}
	return &authFixture{
		service:  NewAuthService(users, collabs, admins, attempts, cfg),
		users:    users,
		collabs:  collabs,
		admins:   admins,
		attempts: attempts,
		cfg:      cfg,
	}
}

func registerRequest(email string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:     "Fulano",
		Email:    email,
		Password: "segredo123",
	}
}

func TestRegisterCustomer_WithReferralCode(t *testing.T) {
	f := newAuthFixture()

	collaborator := &models.Collaborator{Name: "Indicador", ReferralCode: "ABC12345", Active: true}
	require.NoError(t, f.collabs.Create(context.Background(), collaborator))

	req := registerRequest("Fulano@Example.com")
	req.ReferralCode = "ABC12345"

	customer, err := f.service.RegisterCustomer(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "fulano@example.com", customer.Email)
	assert.Equal(t, collaborator.ID, customer.CollaboratorID)
	assert.NotEqual(t, "segredo123", customer.Password)
	assert.True(t, customer.Active)
}

func TestRegisterCustomer_UnknownReferralCode(t *testing.T) {
	f := newAuthFixture()

	req := registerRequest("fulano@example.com")
	req.ReferralCode = "NAO-EXISTE"

	_, err := f.service.RegisterCustomer(context.Background(), req)
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestRegisterCustomer_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RegisterCustomer(context.Background(), registerRequest("fulano@example.com"))
	require.NoError(t, err)

	_, err = f.service.RegisterCustomer(context.Background(), registerRequest("FULANO@example.com"))
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestLoginCustomer_IssuesToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RegisterCustomer(context.Background(), registerRequest("fulano@example.com"))
	require.NoError(t, err)

	token, customer, err := f.service.LoginCustomer(context.Background(), &models.LoginRequest{
		Email:    "fulano@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "fulano@example.com", customer.Email)
}

func TestLoginCustomer_WrongPassword(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RegisterCustomer(context.Background(), registerRequest("fulano@example.com"))
	require.NoError(t, err)

	_, _, err = f.service.LoginCustomer(context.Background(), &models.LoginRequest{
		Email:    "fulano@example.com",
		Password: "errada",
	})
	require.Error(t, err)

	var authErr *apperrors.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid credentials", authErr.Msg)
}

func TestLoginCustomer_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RegisterCustomer(context.Background(), registerRequest("fulano@example.com"))
	require.NoError(t, err)

	wrong := &models.LoginRequest{Email: "fulano@example.com", Password: "errada"}
	for i := 0; i < f.cfg.Auth.MaxLoginFailures; i++ {
		_, _, err = f.service.LoginCustomer(context.Background(), wrong)
		require.Error(t, err)
	}

	// Even the correct password is refused while the lockout holds.
	_, _, err = f.service.LoginCustomer(context.Background(), &models.LoginRequest{
		Email:    "fulano@example.com",
		Password: "segredo123",
	})
	require.Error(t, err)
	var authErr *apperrors.AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Contains(t, authErr.Msg, "too many failed attempts")

	// An expired window lets the user back in, and success clears the counter.
	f.attempts.attempts["fulano@example.com"].LastFail = time.Now().Add(-time.Hour)
	token, _, err := f.service.LoginCustomer(context.Background(), &models.LoginRequest{
		Email:    "fulano@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, f.attempts.attempts)
}

func TestLoginAdmin_TokenCarriesStoredRole(t *testing.T) {
	f := newAuthFixture()

	hashed, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.AdminUser{
		Name:     "Root",
		Email:    "root@bolao.local",
		Password: string(hashed),
		Role:     models.RoleSuperAdmin,
	}
	require.NoError(t, f.admins.Create(context.Background(), admin))

	token, loggedIn, err := f.service.LoginAdmin(context.Background(), &models.LoginRequest{
		Email:    "root@bolao.local",
		Password: "segredo123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleSuperAdmin, loggedIn.Role)
}
