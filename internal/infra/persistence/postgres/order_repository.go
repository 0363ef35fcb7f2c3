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
	"gorm.io/gorm/clause"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its item snapshots.
// GORM inserts the associated items alongside the order row.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("order item references a missing product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}

	return nil
}

// FindByID retrieves a single order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindLatestUnpaidByUserForUpdate returns the user's most recent unpaid order,
// row-locked until the enclosing transaction ends. Two concurrent fulfillment
// attempts therefore serialize on the same order row.
func (repo *orderRepository) FindLatestUnpaidByUserForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND paid = ?", userID, false).
		Order("created_at DESC").
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find latest unpaid order")
	}

	// Items are loaded separately: FOR UPDATE cannot be combined with the
	// outer joins GORM generates for preloads.
	var itemMs []*model.OrderItemModel
	err = repo.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderM.ID).
		Find(&itemMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order items")
	}
	orderM.Items = itemMs

	return toOrderDomain(&orderM), nil
}

// MarkPaid flips paid from false to true with a conditional update. The
// WHERE paid = false guard makes the transition observable exactly once:
// only the call whose update touched a row reports true.
func (repo *orderRepository) MarkPaid(ctx context.Context, orderID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND paid = ?", orderID, false).
		Update("paid", true)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to mark order paid")
	}

	return result.RowsAffected > 0, nil
}

// HasPaidItem reports whether the user already owns the product through any paid order.
func (repo *orderRepository) HasPaidItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.paid = ? AND order_items.product_id = ?", userID, true, productID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check paid order items")
	}

	return count > 0, nil
}

// ListPaidByUser returns the user's paid orders, newest first.
func (repo *orderRepository) ListPaidByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ? AND paid = ?", userID, true).
		Order("created_at DESC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list paid orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Product:   toProductDomain(itemM.Product),
			Price:     itemM.Price,
			Quantity:  itemM.Quantity,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		FullName:        data.FullName,
		Email:           data.Email,
		ShippingAddress: data.ShippingAddress,
		PhoneNumber:     data.PhoneNumber,
		Paid:            data.Paid,
		Items:           items,
		CreatedAt:       data.CreatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return &model.OrderModel{
		UserID:          data.UserID,
		FullName:        data.FullName,
		Email:           data.Email,
		ShippingAddress: data.ShippingAddress,
		PhoneNumber:     data.PhoneNumber,
		Paid:            data.Paid,
		Items:           items,
	}
}
