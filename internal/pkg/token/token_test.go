package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	signed, err := Issue(42, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := Parse(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := Issue(42, []byte("correct-secret"), time.Hour)
	require.NoError(t, err)

	_, err = Parse(signed, []byte("wrong-secret"))
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	signed, err := Issue(42, secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(signed, secret)
	assert.Error(t, err)
}

func TestParseRejectsNonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(signed, secret)
	assert.ErrorIs(t, err, ErrMalformedSubject)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(signed, secret)
	assert.ErrorIs(t, err, ErrMalformedSubject)
}

func TestIssueRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := Issue(1, nil, time.Hour)
	assert.Error(t, err)
}

func TestTTLDefaults(t *testing.T) {
	assert.Equal(t, defaultTTL, TTL())

	t.Setenv("JWT_TTL", "24h")
	assert.Equal(t, 24*time.Hour, TTL())

	t.Setenv("JWT_TTL", "bogus")
	assert.Equal(t, defaultTTL, TTL())
}
