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

// cartRepository implements the domain.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByUser retrieves the user's cart with items and products preloaded.
// A user without a cart row gets an empty cart back, not an error.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Size").
		Preload("Items.Product.Material").
		Where("user_id = ?", userID).
		First(&cartM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.Cart{UserID: userID}, nil
		}

		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	return toCartDomain(&cartM), nil
}

// GetOrCreate returns the user's cart, creating an empty one if absent.
func (repo *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cartM).Error
	if err == nil {
		return toCartDomain(&cartM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	cartM = model.CartModel{UserID: userID}
	if err := repo.db.WithContext(ctx).Create(&cartM).Error; err != nil {
		// A concurrent request may have created the cart first.
		if isUniqueConstraintViolation(err) {
			if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&cartM).Error; err != nil {
				return nil, errors.Wrap(err, "failed to reload cart after conflict")
			}

			return toCartDomain(&cartM), nil
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return toCartDomain(&cartM), nil
}

// FindItem looks up the line for a product in a cart.
func (repo *cartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel
	err := repo.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&itemM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item")
	}

	return toCartItemDomain(&itemM), nil
}

// CreateItem adds a new line to a cart.
func (repo *cartRepository) CreateItem(ctx context.Context, item *entity.CartItem) error {
	itemM := &model.CartItemModel{
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCartItemExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("cart item references a missing product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart item")
	}

	item.ID = itemM.ID
	item.AddedAt = itemM.CreatedAt

	return nil
}

// DeleteItem removes the line for a product from a cart.
func (repo *cartRepository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItemModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// Clear removes every line from the cart. Clearing an empty cart is a no-op.
func (repo *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// --- Mapper Functions ---

// toCartDomain converts a GORM CartModel to a domain Cart entity.
func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		item := toCartItemDomain(itemM)
		item.Product = toProductDomain(itemM.Product)
		items = append(items, item)
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     items,
		CreatedAt: data.CreatedAt,
	}
}

// toCartItemDomain converts a GORM CartItemModel to a domain CartItem entity.
func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		AddedAt:   data.CreatedAt,
	}
}
