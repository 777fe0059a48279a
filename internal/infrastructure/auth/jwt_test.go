package auth

import (
	"testing"
	"time"

	"github.com/shopdash/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		TokenExpiration: 24 * time.Hour,
		Issuer:          "test-issuer",
	}
	return NewJWTService(cfg)
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()

	token, expiresAt, err := svc.GenerateToken(7, "ravi@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()

	token, _, err := svc.GenerateToken(7, "ravi@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.CustomerID)
	assert.Equal(t, "ravi@example.com", claims.Email)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		TokenExpiration: -time.Minute, // Already expired
		Issuer:          "test-issuer",
	}
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateToken(7, "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.GenerateToken(7, "")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-secret-key",
		TokenExpiration: time.Hour,
		Issuer:          "test-issuer",
	})

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolve(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.GenerateToken(42, "")
	require.NoError(t, err)

	customerID, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), customerID)

	_, err = svc.Resolve("bogus")
	assert.Error(t, err)
}
