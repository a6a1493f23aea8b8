package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SweetInput carries the writable fields of a catalog record.
type SweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// CatalogService defines CRUD and search over the sweets catalog.
// Update replaces all writable fields (full replacement, not a partial patch).
type CatalogService interface {
	Create(ctx context.Context, input SweetInput) (*domain.Sweet, error)
	Get(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, input SweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) (*domain.Sweet, error)
}
