package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
)

const (
	bestsellerKeyPrefix  = "catalog:bestsellers:"
	defaultBestsellerTTL = 5 * time.Minute
)

// catalogCache implements service.CatalogCache on Redis. Entries are JSON
// blobs keyed by list length so different limits cache independently.
type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache is the constructor for catalogCache.
func NewCatalogCache(client *redis.Client, cfg *config.Config) service.CatalogCache {
	ttl := defaultBestsellerTTL
	if cfg.Catalog != nil && cfg.Catalog.BestsellerTTL > 0 {
		ttl = cfg.Catalog.BestsellerTTL
	}

	return &catalogCache{client: client, ttl: ttl}
}

// GetBestsellers returns the cached bestseller list or service.ErrCacheMiss.
func (c *catalogCache) GetBestsellers(ctx context.Context, limit int) ([]*entity.Product, error) {
	raw, err := c.client.Get(ctx, bestsellerKey(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}

		return nil, errors.Wrap(err, "failed to read bestseller cache")
	}

	var products []*entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// A corrupt entry behaves like a miss so callers refill it.
		return nil, service.ErrCacheMiss
	}

	return products, nil
}

// SetBestsellers stores the bestseller list under the configured TTL.
func (c *catalogCache) SetBestsellers(ctx context.Context, limit int, products []*entity.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "failed to encode bestseller cache entry")
	}

	if err := c.client.Set(ctx, bestsellerKey(limit), raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write bestseller cache")
	}

	return nil
}

// InvalidateBestsellers drops every cached bestseller list.
func (c *catalogCache) InvalidateBestsellers(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, bestsellerKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "failed to scan bestseller cache keys")
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate bestseller cache")
	}

	return nil
}

func bestsellerKey(limit int) string {
	return fmt.Sprintf("%s%d", bestsellerKeyPrefix, limit)
}
