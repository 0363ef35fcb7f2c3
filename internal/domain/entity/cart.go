package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the per-user staging area for prospective purchases. Exactly one
// cart exists per user; it is created lazily on the first add and cleared
// when an order is fulfilled.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []*CartItem
	CreatedAt time.Time
}

// Total sums quantity times the discount-aware unit price over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.ActualPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartItem is a single (cart, product) line. The pair is unique within a
// cart; re-adding an already-present product leaves the line untouched.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Product   *Product
	Quantity  int
	AddedAt   time.Time
}
