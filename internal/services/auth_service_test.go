// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsworks/ads-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return NewAuthService(newTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Name:     "John",
		LastName: "Dow",
		Email:    "jd@email.com",
		Password: "pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEqual(t, "pass", resp.User.PasswordHash)

	login, err := svc.Login(&LoginRequest{Email: "jd@email.com", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotNil(t, login.User.LastLoginAt)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{
		Name:     "John",
		LastName: "Dow",
		Email:    "jd@email.com",
		Password: "pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Name:     "Jane",
		LastName: "Dow",
		Email:    "jd@email.com",
		Password: "word",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{
		Name:     "John",
		LastName: "Dow",
		Email:    "jd@email.com",
		Password: "pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "jd@email.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Email: "nobody@email.com", Password: "pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Name:     "John",
		LastName: "Dow",
		Email:    "jd@email.com",
		Password: "pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}
