package ports

import "context"

// AuthResult is returned by both Register and Login: a freshly signed
// identity token plus the account it asserts.
type AuthResult struct {
	Token  string
	UserID string
	Email  string
}

// IdentityService registers and authenticates users and issues identity
// tokens for them.
type IdentityService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
