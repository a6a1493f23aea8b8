package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// SweetCache is the optional read-through cache consulted on single-record
// reads and invalidated after every mutation. Cache failures are never fatal.
type SweetCache interface {
	Get(ctx context.Context, id string) (*domain.Sweet, error)
	Set(ctx context.Context, sweet *domain.Sweet) error
	Invalidate(ctx context.Context, id string) error
}

// CatalogService implements CRUD and search over sweets.
type CatalogService struct {
	repo   ports.SweetRepository
	cache  SweetCache
	logger zerolog.Logger
}

// NewCatalogService builds a CatalogService. cache may be nil.
func NewCatalogService(repo ports.SweetRepository, cache SweetCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, input ports.SweetInput) (*domain.Sweet, error) {
	sweet := &domain.Sweet{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := sweet.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, sweet)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create sweet")
		return nil, err
	}

	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sweet); err != nil {
			s.logger.Warn().Err(err).Str("sweet_id", id).Msg("failed to cache sweet")
		}
	}
	return sweet, nil
}

func (s *CatalogService) List(ctx context.Context, skip, limit int64) ([]*domain.Sweet, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *CatalogService) Search(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
	return s.repo.Search(ctx, filter)
}

func (s *CatalogService) Update(ctx context.Context, id string, input ports.SweetInput) (*domain.Sweet, error) {
	sweet := &domain.Sweet{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := sweet.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, sweet)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("sweet_id", id).Msg("sweet updated")
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (*domain.Sweet, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("sweet_id", id).Str("name", deleted.Name).Msg("sweet deleted")
	return deleted, nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("sweet_id", id).Msg("failed to invalidate sweet cache")
	}
}
