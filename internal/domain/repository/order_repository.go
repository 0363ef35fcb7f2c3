package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order cannot be located.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its item snapshots.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindLatestUnpaidByUserForUpdate returns the user's most recent unpaid
	// order with its items, row-locked for the duration of the enclosing
	// transaction. Returns ErrOrderNotFound when the user has no unpaid order.
	FindLatestUnpaidByUserForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Order, error)

	// MarkPaid flips the order's paid flag from false to true.
	// The reported bool is true only for the call that performed the
	// transition; a second call on the same order reports false.
	MarkPaid(ctx context.Context, orderID uuid.UUID) (bool, error)

	// HasPaidItem reports whether the user already owns the product through
	// any paid order.
	HasPaidItem(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// ListPaidByUser returns the user's paid orders, newest first, with items
	// and their products preloaded.
	ListPaidByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
