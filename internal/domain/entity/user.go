package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. PasswordHash is the bcrypt hash of the
// login password and never leaves the persistence boundary.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
