package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// InventoryService owns restock and purchase. Both delegate the
// read-modify-write to a single atomic conditional update in the repository,
// so concurrent purchases of the same sweet can never oversell.
type InventoryService struct {
	repo   ports.SweetRepository
	cache  SweetCache
	logger zerolog.Logger
}

// NewInventoryService builds an InventoryService. cache may be nil.
func NewInventoryService(repo ports.SweetRepository, cache SweetCache, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, cache: cache, logger: logger}
}

func (s *InventoryService) Restock(ctx context.Context, id string, amount int64) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().
		Str("sweet_id", id).
		Int64("amount", amount).
		Int64("quantity", sweet.Quantity).
		Msg("sweet restocked")
	return sweet, nil
}

func (s *InventoryService) Purchase(ctx context.Context, id string, amount int64) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, -amount)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().
		Str("sweet_id", id).
		Int64("amount", amount).
		Int64("quantity", sweet.Quantity).
		Msg("sweet purchased")
	return sweet, nil
}

func (s *InventoryService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("sweet_id", id).Msg("failed to invalidate sweet cache")
	}
}
