package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product cannot be located by id or slug.
var ErrProductNotFound = errors.New("product not found")

// Sort orders accepted by ProductFilter.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter narrows and orders a catalog listing. Zero values mean
// "no constraint"; Page is 1-based.
type ProductFilter struct {
	SizeSlug     string
	MaterialSlug string
	DiscountOnly bool
	Sort         string
	Page         int
	PerPage      int
}

// ProductRepository defines the operations for catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySlug retrieves a single product by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// List returns a filtered, sorted page of products and the total count
	// matching the filter before pagination.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// Bestsellers returns up to limit products ordered by purchases count descending.
	Bestsellers(ctx context.Context, limit int) ([]*entity.Product, error)

	// IncrementPurchases atomically adds qty to the product's purchases counter.
	// The addition happens in SQL so concurrent increments never lose updates.
	IncrementPurchases(ctx context.Context, id uuid.UUID, qty int) error

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error
}
