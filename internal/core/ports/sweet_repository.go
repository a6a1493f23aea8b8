package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SweetFilter carries the optional search constraints. Name and Category match
// case-insensitively as substrings; price bounds are inclusive. Filters compose
// with logical AND; the zero value matches everything.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// SweetRepository defines persistence operations for catalog records.
type SweetRepository interface {
	Create(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	// Replace overwrites name/category/price/quantity of an existing record.
	Replace(ctx context.Context, id string, sweet *domain.Sweet) (*domain.Sweet, error)
	// Delete removes the record and returns its prior state.
	Delete(ctx context.Context, id string) (*domain.Sweet, error)

	// AdjustQuantity applies delta to the sweet's quantity in a single atomic
	// conditional write: the store must only match a document whose quantity
	// would remain non-negative. Returns the updated record,
	// domain.ErrSweetNotFound when the id does not resolve, or
	// domain.ErrInsufficientStock when a negative delta exceeds current stock.
	AdjustQuantity(ctx context.Context, id string, delta int64) (*domain.Sweet, error)
}
