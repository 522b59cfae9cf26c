package userservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	signed, expiry, err := generateToken(42, "alice@example.com", secret, AccessTokenTime)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTime), expiry, time.Minute)

	claims, err := parseToken(signed, secret)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	id, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, _, err := generateToken(42, "alice@example.com", []byte("secret-a"), AccessTokenTime)
	assert.NoError(t, err)

	_, err = parseToken(signed, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	signed, _, err := generateToken(42, "alice@example.com", []byte("test-secret"), -time.Minute)
	assert.NoError(t, err)

	_, err = parseToken(signed, []byte("test-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := parseToken("not-a-jwt", []byte("test-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewAuthToken(t *testing.T) {
	token, err := newAuthToken(1, "alice@example.com", []byte("test-secret"))
	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.NotEmpty(t, token.RefreshToken)
	assert.NotEqual(t, token.AccessToken, token.RefreshToken)
	assert.True(t, token.RefreshTokenExpiry.After(token.AccessTokenExpiry))
}
