package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartAddResult enumerates the outcomes of adding a product to the cart.
type CartAddResult string

const (
	// CartAdded means a new line was created.
	CartAdded CartAddResult = "added"
	// CartAlreadyInCart means the product was already a line; nothing changed.
	CartAlreadyInCart CartAddResult = "already_in_cart"
	// CartAlreadyPurchased means the user owns the product through a paid
	// order, so the add was refused.
	CartAlreadyPurchased CartAddResult = "already_purchased"
)

// CartAddOutput reports the outcome of an add attempt.
type CartAddOutput struct {
	Result CartAddResult
	Item   *entity.CartItem
}

// CartUsecase defines the interface for cart operations.
type CartUsecase interface {
	// GetCart returns the user's cart with product details and total.
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// AddProduct puts the product in the cart. The call is idempotent: a
	// product already present keeps a single line with unchanged quantity.
	AddProduct(ctx context.Context, userID, productID uuid.UUID) (*CartAddOutput, error)

	// RemoveProduct drops the product's line from the cart.
	RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error
}
