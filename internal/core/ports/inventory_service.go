package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// InventoryService owns the only operations that mutate stock quantity.
// Both reject non-positive amounts with domain.ErrInvalidQuantity and
// guarantee quantity never goes negative under concurrent calls.
type InventoryService interface {
	// Restock adds amount to the sweet's quantity.
	Restock(ctx context.Context, id string, amount int64) (*domain.Sweet, error)
	// Purchase subtracts amount, failing with domain.ErrInsufficientStock
	// when amount exceeds current availability.
	Purchase(ctx context.Context, id string, amount int64) (*domain.Sweet, error)
}
