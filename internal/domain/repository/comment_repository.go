package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCommentNotFound is returned when a comment cannot be located.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the operations for comment persistence.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByID retrieves a single comment.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)

	// Delete removes a comment by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByProduct returns the product's comments, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error)
}
