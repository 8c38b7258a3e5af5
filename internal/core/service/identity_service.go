package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/tasktracker/internal/core/domain"
	"github.com/taskhive/tasktracker/internal/core/ports"
	"github.com/taskhive/tasktracker/pkg/token"
)

// IdentityService implements registration and login. Passwords are stored
// as bcrypt hashes (salted, self-describing format, constant-time verify).
type IdentityService struct {
	repo   ports.UserRepository
	tokens *token.Config
	logger zerolog.Logger
}

func NewIdentityService(repo ports.UserRepository, tokens *token.Config, logger zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, tokens: tokens, logger: logger}
}

func (s *IdentityService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrMissingCredentials
	}
	if len(email) > domain.MaxEmailLength {
		return nil, domain.ErrEmailTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedOn:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return &ports.AuthResult{Token: signed, UserID: user.ID, Email: user.Email}, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// A missing account and a wrong password are reported identically.
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// A fresh token on every login; earlier tokens stay valid until they
	// expire on their own.
	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: signed, UserID: user.ID, Email: user.Email}, nil
}
