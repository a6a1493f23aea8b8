package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// UserUpdateInput is the optional-field diff accepted by UserService.Update.
// A nil field means "leave unchanged". Password is plaintext here; the service
// hashes it before it reaches the repository.
type UserUpdateInput struct {
	Username *string
	Password *string
	Role     *string
}

// UserService defines the admin-facing account operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error)
}
