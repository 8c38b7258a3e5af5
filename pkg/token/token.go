// Package token issues and verifies the signed identity tokens exchanged
// between the API and its callers. Both sides share one explicitly
// constructed Config — there is no process-global signing key.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinKeyBytes is the minimum accepted HMAC key length.
const MinKeyBytes = 32

// Leeway tolerated on expiry and not-before checks, to absorb clock skew
// between issuer and verifier.
const Leeway = 2 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by every identity token. Subject holds the
// user id; Email is informational.
type Claims struct {
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// Config holds the key material and token parameters. Construct it once at
// startup and pass it by reference into both the issuing and verifying
// components.
type Config struct {
	Key      []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// NewConfig validates key material and token parameters up front so that a
// misconfigured process fails at startup rather than at first request.
func NewConfig(key []byte, issuer, audience string, ttl time.Duration) (*Config, error) {
	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("signing key too short: %d bytes, require >= %d", len(key), MinKeyBytes)
	}
	if issuer == "" || audience == "" {
		return nil, errors.New("issuer and audience required")
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Config{Key: key, Issuer: issuer, Audience: audience, TTL: ttl}, nil
}

// Issue signs a fresh HS256 token asserting userID (as subject) and email,
// expiring TTL from now. Each call produces a new token; prior tokens are
// never reused or rotated.
func (c *Config) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.Issuer,
			Audience:  jwtlib.ClaimStrings{c.Audience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.TTL)),
		},
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(c.Key)
}

// Verify decodes the compact token, checks signature, issuer, audience and
// expiry (with Leeway), and returns the caller's user id. Any failure —
// including a subject that does not parse as a UUID — yields
// ErrInvalidToken; there is no partial trust.
func (c *Config) Verify(tokenString string) (userID string, email string, err error) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (interface{}, error) {
		return c.Key, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(c.Issuer),
		jwtlib.WithAudience(c.Audience),
		jwtlib.WithLeeway(Leeway),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidToken
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	return uid.String(), claims.Email, nil
}
