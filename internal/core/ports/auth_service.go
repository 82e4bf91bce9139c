package ports

import (
	"context"

	"github.com/workforcehq/employee-api/internal/core/domain"
)

// AuthService defines the use-case operations for account management.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login accepts either identifier; unknown user and wrong password are
	// surfaced identically as domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, username, password string) (string, error)
}

// TokenVerifier is the gate every employee-record operation passes through.
// Implemented by the auth service and consumed by the auth middleware.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Claims, error)
}

// LoginThrottle tracks failed login attempts per identifier so repeated
// guessing can be locked out for a cooling-off window.
type LoginThrottle interface {
	IsLocked(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
