package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

const defaultCacheTTL = 30 * time.Second

// SweetCache is a read-through cache for catalog records.
// Key format: sweet:<id>, value is the JSON-encoded record. Every quantity
// mutation invalidates the key, so the TTL only bounds staleness of reads
// that race a concurrent mutation.
type SweetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSweetCache creates a SweetCache wrapping the given Redis client.
// If ttl <= 0, defaultCacheTTL is used.
func NewSweetCache(client *redis.Client, ttl time.Duration) *SweetCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SweetCache{client: client, ttl: ttl}
}

// Get returns the cached record, or (nil, nil) on a cache miss.
func (c *SweetCache) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var sweet domain.Sweet
	if err := json.Unmarshal(data, &sweet); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &sweet, nil
}

// Set stores the record for the configured TTL.
func (c *SweetCache) Set(ctx context.Context, sweet *domain.Sweet) error {
	data, err := json.Marshal(sweet)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(sweet.ID), data, c.ttl).Err()
}

// Invalidate drops the cached record after a mutation.
func (c *SweetCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *SweetCache) key(id string) string {
	return "sweet:" + id
}
