package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commentRepository implements the domain.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := &model.CommentModel{
		ProductID: comment.ProductID,
		UserID:    comment.UserID,
		Text:      comment.Text,
	}

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("comment references a missing product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt

	return nil
}

// FindByID retrieves a single comment.
func (repo *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var commentM model.CommentModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&commentM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by id")
	}

	return toCommentDomain(&commentM), nil
}

// Delete removes a comment by ID.
func (repo *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CommentModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete comment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// ListByProduct returns the product's comments, newest first.
func (repo *commentRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error) {
	var commentMs []*model.CommentModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&commentMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	comments := make([]*entity.Comment, 0, len(commentMs))
	for _, commentM := range commentMs {
		comments = append(comments, toCommentDomain(commentM))
	}

	return comments, nil
}

// toCommentDomain converts a GORM CommentModel to a domain Comment entity.
func toCommentDomain(data *model.CommentModel) *entity.Comment {
	if data == nil {
		return nil
	}

	return &entity.Comment{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Text:      data.Text,
		CreatedAt: data.CreatedAt,
	}
}
