package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFavoriteNotFound is returned when a (user, product) favorite does not exist.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoriteRepository defines the operations for favorite persistence.
type FavoriteRepository interface {
	// Find looks up the favorite for a (user, product) pair.
	// Returns ErrFavoriteNotFound when the pair is not favorited.
	Find(ctx context.Context, userID, productID uuid.UUID) (*entity.Favorite, error)

	// Create persists a new favorite.
	Create(ctx context.Context, favorite *entity.Favorite) error

	// Delete removes the favorite for a (user, product) pair.
	Delete(ctx context.Context, userID, productID uuid.UUID) error

	// ListByUser returns the user's favorites with products preloaded, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error)
}
