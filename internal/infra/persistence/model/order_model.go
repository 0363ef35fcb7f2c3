package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Paid flips false -> true exactly once.
type OrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName        string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	ShippingAddress string    `gorm:"type:text;not null"`
	PhoneNumber     string    `gorm:"type:varchar(32);not null"`
	Paid            bool      `gorm:"not null;default:false;index"`
	CreatedAt       time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is the unit price
// frozen at checkout time, stored as numeric(12,2).
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null;default:1"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
