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

// actualPriceExpr is the discount-aware price used for catalog sorting.
const actualPriceExpr = "CASE WHEN discount_percentage > 0 THEN discount_price ELSE current_price END"

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product with its size and material preloaded.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Size").
		Preload("Material").
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindBySlug retrieves a single product by its URL slug.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Size").
		Preload("Material").
		Where("slug = ?", slug).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// List returns a filtered, sorted page of products plus the total match count.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.SizeSlug != "" {
		query = query.Where("size_id IN (?)",
			repo.db.Model(&model.SizeModel{}).Select("id").Where("slug = ?", filter.SizeSlug))
	}
	if filter.MaterialSlug != "" {
		query = query.Where("material_id IN (?)",
			repo.db.Model(&model.MaterialModel{}).Select("id").Where("slug = ?", filter.MaterialSlug))
	}
	if filter.DiscountOnly {
		query = query.Where("discount_percentage > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	switch filter.Sort {
	case repository.SortPriceAsc:
		query = query.Order(actualPriceExpr + " ASC")
	case repository.SortPriceDesc:
		query = query.Order(actualPriceExpr + " DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if filter.PerPage > 0 {
		query = query.Offset((page - 1) * filter.PerPage).Limit(filter.PerPage)
	}

	var productMs []*model.ProductModel
	if err := query.Preload("Size").Preload("Material").Find(&productMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Bestsellers returns up to limit products ordered by purchases count descending.
func (repo *productRepository) Bestsellers(ctx context.Context, limit int) ([]*entity.Product, error) {
	var productMs []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Order("purchases_count DESC").
		Limit(limit).
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bestsellers")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// IncrementPurchases adds qty to the purchases counter inside the database,
// so concurrent fulfillments never lose an increment.
func (repo *productRepository) IncrementPurchases(ctx context.Context, id uuid.UUID, qty int) error {
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("purchases_count", gorm.Expr("purchases_count + ?", qty)).Error
	if err != nil {
		return errors.Wrap(err, "failed to increment purchases count")
	}

	return nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("product slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	product := &entity.Product{
		ID:                 data.ID,
		Name:               data.Name,
		Slug:               data.Slug,
		Description:        data.Description,
		CurrentPrice:       data.CurrentPrice,
		DiscountPrice:      data.DiscountPrice,
		DiscountPercentage: data.DiscountPercentage,
		PurchasesCount:     data.PurchasesCount,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}

	if data.Size != nil {
		product.Size = &entity.Size{ID: data.Size.ID, Name: data.Size.Name, Slug: data.Size.Slug}
	}
	if data.Material != nil {
		product.Material = &entity.Material{ID: data.Material.ID, Name: data.Material.Name, Slug: data.Material.Slug}
	}

	return product
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	productM := &model.ProductModel{
		ID:                 data.ID,
		Name:               data.Name,
		Slug:               data.Slug,
		Description:        data.Description,
		CurrentPrice:       data.CurrentPrice,
		DiscountPrice:      data.DiscountPrice,
		DiscountPercentage: data.DiscountPercentage,
		PurchasesCount:     data.PurchasesCount,
	}

	if data.Size != nil {
		sizeID := data.Size.ID
		productM.SizeID = &sizeID
	}
	if data.Material != nil {
		materialID := data.Material.ID
		productM.MaterialID = &materialID
	}

	return productM
}
