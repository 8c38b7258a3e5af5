package token

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig(testKey, "tasktracker-api", "tasktracker-web", 8*time.Hour)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func TestNewConfig_RejectsShortKey(t *testing.T) {
	if _, err := NewConfig([]byte("short"), "iss", "aud", time.Hour); err == nil {
		t.Fatalf("expected error for undersized key")
	}
}

func TestNewConfig_RequiresIssuerAndAudience(t *testing.T) {
	if _, err := NewConfig(testKey, "", "aud", time.Hour); err == nil {
		t.Fatalf("expected error for missing issuer")
	}
	if _, err := NewConfig(testKey, "iss", "", time.Hour); err == nil {
		t.Fatalf("expected error for missing audience")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	userID := uuid.NewString()

	signed, err := cfg.Issue(userID, "alice@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if strings.Count(signed, ".") != 2 {
		t.Fatalf("expected compact three-part token, got %q", signed)
	}

	gotID, gotEmail, err := cfg.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotID != userID {
		t.Fatalf("subject mismatch: got %s want %s", gotID, userID)
	}
	if gotEmail != "alice@example.com" {
		t.Fatalf("email mismatch: got %s", gotEmail)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	cfg := testConfig(t)

	// Sign a token that expired beyond the leeway window.
	now := time.Now().Add(-cfg.TTL - 2*Leeway)
	claims := Claims{
		Email: "old@example.com",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    cfg.Issuer,
			Audience:  jwtlib.ClaimStrings{cfg.Audience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(cfg.TTL)),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(cfg.Key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := cfg.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	cfg := testConfig(t)
	other, err := NewConfig([]byte("ffffffffffffffffffffffffffffffff"), cfg.Issuer, cfg.Audience, cfg.TTL)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	signed, err := other.Issue(uuid.NewString(), "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := cfg.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestVerify_RejectsWrongIssuerOrAudience(t *testing.T) {
	cfg := testConfig(t)

	wrongIssuer, _ := NewConfig(testKey, "someone-else", cfg.Audience, cfg.TTL)
	signed, err := wrongIssuer.Issue(uuid.NewString(), "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := cfg.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}

	wrongAudience, _ := NewConfig(testKey, cfg.Issuer, "someone-else", cfg.TTL)
	signed, err = wrongAudience.Issue(uuid.NewString(), "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := cfg.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong audience, got %v", err)
	}
}

func TestVerify_RejectsNonUUIDSubject(t *testing.T) {
	cfg := testConfig(t)

	claims := Claims{
		Email: "a@b.com",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    cfg.Issuer,
			Audience:  jwtlib.ClaimStrings{cfg.Audience},
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(cfg.Key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := cfg.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for non-uuid subject, got %v", err)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	cfg := testConfig(t)
	if _, _, err := cfg.Verify("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
