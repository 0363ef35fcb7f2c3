package service

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrCacheMiss is returned when a cache lookup finds no entry.
var ErrCacheMiss = errors.New("cache miss")

// CatalogCache caches derived catalog views. The cache is advisory: callers
// fall back to the database on any error and log failures instead of
// propagating them.
type CatalogCache interface {
	// GetBestsellers returns the cached bestseller list or ErrCacheMiss.
	GetBestsellers(ctx context.Context, limit int) ([]*entity.Product, error)

	// SetBestsellers stores the bestseller list under the configured TTL.
	SetBestsellers(ctx context.Context, limit int, products []*entity.Product) error

	// InvalidateBestsellers drops every cached bestseller list. Called after
	// purchase counters change.
	InvalidateBestsellers(ctx context.Context) error
}
