// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Prices are decimals to keep money arithmetic
// exact; DiscountPrice is meaningful only while DiscountPercentage > 0.
type Product struct {
	ID                 uuid.UUID
	Name               string
	Slug               string
	Description        string
	CurrentPrice       decimal.Decimal
	DiscountPrice      decimal.Decimal
	DiscountPercentage int
	PurchasesCount     int // Monotonic counter, incremented on fulfillment.
	Size               *Size
	Material           *Material
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ActualPrice returns the price a buyer pays right now: the discount price
// while a discount is active, the list price otherwise.
func (p *Product) ActualPrice() decimal.Decimal {
	if p.DiscountPercentage > 0 {
		return p.DiscountPrice
	}

	return p.CurrentPrice
}

// OnSale reports whether the product currently has an active discount.
func (p *Product) OnSale() bool {
	return p.DiscountPercentage > 0
}

// Size is a filterable product attribute (e.g. "S", "M", "L").
type Size struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// Material is a filterable product attribute (e.g. "cotton", "wool").
type Material struct {
	ID   uuid.UUID
	Name string
	Slug string
}
