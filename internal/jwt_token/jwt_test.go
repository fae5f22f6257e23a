package jwttoken

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup/pkg/requestcontext"
)

var jwtService = NewJWTService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)

const (
	email     = "jane@example.com"
	sessionID = "sess-1"
	expiresIn = time.Hour
)

var issuedAt = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func Test_GenerateAccessToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(at(issuedAt), email, sessionID, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(at(issuedAt.Add(time.Minute)), token)
	require.NoError(t, err)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, issuedAt.Add(expiresIn), claims.ExpiresAt.Time.UTC())
	assert.NotEmpty(t, claims.ID)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken(at(issuedAt), "invalid-token-string")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(at(issuedAt), email, sessionID, expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(at(issuedAt.Add(2*time.Hour)), token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func Test_ValidateToken_WrongKeyOrAudience(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(at(issuedAt), email, sessionID, expiresIn)
	require.NoError(t, err)

	other := NewJWTService("another-key", "test-issuer", "test-audience")
	_, err = other.ValidateToken(at(issuedAt), token)
	require.ErrorIs(t, err, ErrTokenInvalid)

	otherAudience := NewJWTService("test-signing-key", "test-issuer", "someone-else")
	_, err = otherAudience.ValidateToken(at(issuedAt), token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
