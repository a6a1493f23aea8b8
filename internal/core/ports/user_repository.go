package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// UserUpdate carries the optional-field diff applied by UserRepository.Update.
// A nil field means "leave unchanged". PasswordHash is already hashed by the
// service layer; the repository never sees a plaintext password.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Role         *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user and returns the stored record with its assigned ID.
	// Returns domain.ErrUserExists when the username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
}
