package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManagerEmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager("unit-test-secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Generate("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenExpired(t *testing.T) {
	m, err := NewTokenManager("unit-test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := m.Generate("alice")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	m, err := NewTokenManager("unit-test-secret", time.Hour)
	require.NoError(t, err)

	_, err = m.Validate("not.a.token")
	assert.Error(t, err)
}
