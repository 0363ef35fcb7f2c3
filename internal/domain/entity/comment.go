package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user-authored note on a product. Only the author may remove it.
type Comment struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Text      string
	CreatedAt time.Time
}

// Favorite marks a (user, product) pair; toggled on and off by the user.
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Product   *Product
	CreatedAt time.Time
}
