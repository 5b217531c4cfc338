package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adityasampath/Imagify-Project/internal/pkg/env"
)

const defaultTTL = 720 * time.Hour

// ErrMalformedSubject marks a token whose subject is not a usable user id.
var ErrMalformedSubject = errors.New("token subject is not a user id")

// Issue signs a bearer token for the given user id.
func Issue(userID uint, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("secret is required for token generation")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies signature and expiry and returns the embedded user id.
func Parse(raw string, secret []byte) (uint, error) {
	if len(secret) == 0 {
		return 0, errors.New("secret is required for token verification")
	}

	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, ErrMalformedSubject
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSubject, claims.Subject)
	}
	return uint(id), nil
}

// Secret returns the server-held signing secret from configuration.
func Secret() []byte {
	return []byte(env.GetEnv("JWT_SECRET", ""))
}

// TTL returns the configured token lifetime (JWT_TTL, e.g. "720h").
func TTL() time.Duration {
	raw := env.GetEnv("JWT_TTL", "")
	if raw == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultTTL
	}
	return d
}
