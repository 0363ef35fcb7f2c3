package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable-once-created purchase intent. Contact and shipping
// fields are captured at checkout time; Paid transitions false -> true exactly
// once, and the fulfillment side effects fire at most once per order.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FullName        string
	Email           string
	ShippingAddress string
	PhoneNumber     string
	Paid            bool
	Items           []*OrderItem
	CreatedAt       time.Time
}

// Total sums the frozen line prices times quantities.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// OrderItem is an immutable snapshot of a cart line taken at checkout time.
// Price is copied from the product's actual price when the order is created,
// so later catalog changes never affect a placed order.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Product   *Product
	Price     decimal.Decimal
	Quantity  int
}

// UnitAmountMinor returns the frozen unit price in minor currency units
// (e.g. cents), as required by the payment gateway line format.
func (i *OrderItem) UnitAmountMinor() int64 {
	return i.Price.Shift(2).Round(0).IntPart()
}
