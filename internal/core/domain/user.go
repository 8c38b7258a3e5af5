package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxEmailLength bounds the normalized email stored for a user.
const MaxEmailLength = 256

var ErrMissingCredentials = errors.New("email and password required")
var ErrEmailTooLong = errors.New("email too long")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// User models a registered account. IDs are UUIDv4 strings assigned at
// registration and immutable afterwards.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"createdOn"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every lookup and every stored email goes through this first, so two
// registrations differing only by case or padding collide on the same row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
