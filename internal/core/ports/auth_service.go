package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// AuthService implements registration and credential-based login.
type AuthService interface {
	// Register creates an account. Role defaults to domain.RoleUser when empty.
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies the credentials and returns a signed session token.
	// Absent user and wrong password both surface as domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
