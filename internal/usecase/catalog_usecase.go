package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListProductsInput narrows and orders a catalog listing.
type ListProductsInput struct {
	SizeSlug     string
	MaterialSlug string
	DiscountOnly bool
	Sort         string
	Page         int
}

// AddCommentInput defines the data required to comment on a product.
type AddCommentInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Text      string
}

// --- Output DTOs ---

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products   []*entity.Product
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// ToggleFavoriteOutput reports which way the favorite flipped.
type ToggleFavoriteOutput struct {
	Favorited bool
}

// CatalogUsecase defines the interface for catalog browsing and
// product-scoped user actions (comments, favorites).
type CatalogUsecase interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	GetProduct(ctx context.Context, slug string) (*entity.Product, []*entity.Comment, error)
	Bestsellers(ctx context.Context) ([]*entity.Product, error)

	AddComment(ctx context.Context, input AddCommentInput) (*entity.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error

	ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (*ToggleFavoriteOutput, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error)
}
