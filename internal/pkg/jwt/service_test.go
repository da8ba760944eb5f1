package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", 0)

	tok, err := svc.GenerateToken(42)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	tok, err := svc.GenerateToken(1)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("one", 0).GenerateToken(1)
	require.NoError(t, err)

	_, err = NewHMACService("two", 0).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Malformed(t *testing.T) {
	_, err := NewHMACService("secret", 0).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_MissingUserID(t *testing.T) {
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"sub": "x"})
	tok, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACService("secret", 0).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsOtherAlgorithms(t *testing.T) {
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, Claims{UserID: 1})
	tok, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACService("secret", 0).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_GenerateRejectsInvalidUser(t *testing.T) {
	_, err := NewHMACService("secret", 0).GenerateToken(0)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
