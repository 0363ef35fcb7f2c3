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

// favoriteRepository implements the domain.FavoriteRepository interface using GORM.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Find looks up the favorite for a (user, product) pair.
func (repo *favoriteRepository) Find(ctx context.Context, userID, productID uuid.UUID) (*entity.Favorite, error) {
	var favoriteM model.FavoriteModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favoriteM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, errors.Wrap(err, "failed to find favorite")
	}

	return toFavoriteDomain(&favoriteM), nil
}

// Create persists a new favorite.
func (repo *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favoriteM := &model.FavoriteModel{
		UserID:    favorite.UserID,
		ProductID: favorite.ProductID,
	}

	if err := repo.db.WithContext(ctx).Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("product already favorited")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorite")
	}

	favorite.ID = favoriteM.ID
	favorite.CreatedAt = favoriteM.CreatedAt

	return nil
}

// Delete removes the favorite for a (user, product) pair.
func (repo *favoriteRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.FavoriteModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete favorite")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFavoriteNotFound
	}

	return nil
}

// ListByUser returns the user's favorites with products preloaded, newest first.
func (repo *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	var favoriteMs []*model.FavoriteModel
	err := repo.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Size").
		Preload("Product.Material").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favoriteMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	favorites := make([]*entity.Favorite, 0, len(favoriteMs))
	for _, favoriteM := range favoriteMs {
		favorites = append(favorites, toFavoriteDomain(favoriteM))
	}

	return favorites, nil
}

// toFavoriteDomain converts a GORM FavoriteModel to a domain Favorite entity.
func toFavoriteDomain(data *model.FavoriteModel) *entity.Favorite {
	if data == nil {
		return nil
	}

	return &entity.Favorite{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Product:   toProductDomain(data.Product),
		CreatedAt: data.CreatedAt,
	}
}
