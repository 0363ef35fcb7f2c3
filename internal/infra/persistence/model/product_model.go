package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. Prices are stored as
// numeric(12,2) so money survives round trips exactly.
type ProductModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name               string          `gorm:"type:varchar(255);not null"`
	Slug               string          `gorm:"type:varchar(255);unique;not null"`
	Description        string          `gorm:"type:text"`
	CurrentPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountPercentage int             `gorm:"not null;default:0"`
	PurchasesCount     int             `gorm:"not null;default:0"`
	SizeID             *uuid.UUID      `gorm:"type:uuid;index"`
	MaterialID         *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Size     *SizeModel     `gorm:"foreignKey:SizeID"`
	Material *MaterialModel `gorm:"foreignKey:MaterialID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// SizeModel mirrors the 'sizes' table.
type SizeModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name string    `gorm:"type:varchar(50);not null"`
	Slug string    `gorm:"type:varchar(50);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (SizeModel) TableName() string {
	return "sizes"
}

// MaterialModel mirrors the 'materials' table.
type MaterialModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name string    `gorm:"type:varchar(50);not null"`
	Slug string    `gorm:"type:varchar(50);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (MaterialModel) TableName() string {
	return "materials"
}
