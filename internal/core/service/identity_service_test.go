package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/tasktracker/internal/core/domain"
	"github.com/taskhive/tasktracker/pkg/token"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	r.byEmail[user.Email] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func testTokens(t *testing.T) *token.Config {
	t.Helper()
	cfg, err := token.NewConfig([]byte("0123456789abcdef0123456789abcdef"), "tasktracker-api", "tasktracker-web", 8*time.Hour)
	if err != nil {
		t.Fatalf("token config: %v", err)
	}
	return cfg
}

func TestIdentityService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewIdentityService(repo, testTokens(t), zerolog.Nop())

	res, err := svc.Register(context.Background(), "alice@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" || res.UserID == "" {
		t.Fatalf("incomplete result: %+v", res)
	}
	if res.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", res.Email)
	}

	stored := repo.byEmail["alice@example.com"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "s3cret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestIdentityService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewIdentityService(repo, testTokens(t), zerolog.Nop())

	res, err := svc.Register(context.Background(), "  Foo@X.COM ", "s3cret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Email != "foo@x.com" {
		t.Fatalf("expected normalized email, got %s", res.Email)
	}

	// Same credentials, differently cased email: same account.
	login, err := svc.Login(context.Background(), "foo@x.com", "s3cret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.UserID != res.UserID {
		t.Fatalf("expected same account, got %s vs %s", login.UserID, res.UserID)
	}
}

func TestIdentityService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewIdentityService(repo, testTokens(t), zerolog.Nop())

	if _, err := svc.Register(context.Background(), "   ", "pass"); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials for blank email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.com", "  "); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials for blank password, got %v", err)
	}
}

func TestIdentityService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewIdentityService(repo, testTokens(t), zerolog.Nop())

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Differs only by case and whitespace: still a conflict.
	if _, err := svc.Register(context.Background(), " BOB@example.com", "pass2"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestIdentityService_Login_TokenSubjectResolvesToUser(t *testing.T) {
	repo := newStubUserRepo()
	tokens := testTokens(t)
	svc := NewIdentityService(repo, tokens, zerolog.Nop())

	reg, err := svc.Register(context.Background(), "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	subject, email, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if subject != reg.UserID {
		t.Fatalf("token subject %s does not resolve to user %s", subject, reg.UserID)
	}
	if email != "carol@example.com" {
		t.Fatalf("unexpected email claim: %s", email)
	}
}

func TestIdentityService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewIdentityService(repo, testTokens(t), zerolog.Nop())

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass")
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewIdentityService(repo, testTokens(t), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
