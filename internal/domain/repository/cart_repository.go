package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is returned when a cart line does not exist.
var ErrCartItemNotFound = errors.New("cart item not found")

// ErrCartItemExists is returned when a line for the product already exists
// in the cart. Callers treat it as an idempotent add.
var ErrCartItemExists = errors.New("cart item already exists")

// CartRepository defines the operations for cart persistence.
// A user has at most one cart; it is created lazily via GetOrCreate.
type CartRepository interface {
	// FindByUser retrieves the user's cart with its items and their products
	// preloaded. Returns an empty cart (no items) if none exists yet.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// GetOrCreate returns the user's cart, creating an empty one if absent.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindItem looks up the line for a product in a cart.
	// Returns ErrCartItemNotFound when the product is not in the cart.
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error)

	// CreateItem adds a new line to a cart.
	CreateItem(ctx context.Context, item *entity.CartItem) error

	// DeleteItem removes the line for a product from a cart.
	// Returns ErrCartItemNotFound when no such line exists.
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error

	// Clear removes every line from the cart. Clearing an empty cart is a no-op.
	Clear(ctx context.Context, cartID uuid.UUID) error
}
