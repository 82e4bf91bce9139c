package ports

import (
	"context"

	"github.com/workforcehq/employee-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmailOrUsername matches a user on either identifier. Empty
	// arguments are ignored; at least one must be non-empty. Returns
	// domain.ErrUserNotFound when nothing matches.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
}
