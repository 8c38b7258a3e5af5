package ports

import (
	"context"

	"github.com/taskhive/tasktracker/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts the user and returns domain.ErrEmailTaken when the
	// normalized email already exists.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail looks up a user by exact normalized-email match and
	// returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
