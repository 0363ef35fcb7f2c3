package impl

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service      usecase.CatalogUsecase
	productRepo  *mockRepo.MockProductRepository
	commentRepo  *mockRepo.MockCommentRepository
	favoriteRepo *mockRepo.MockFavoriteRepository
	cache        *mockSvc.MockCatalogCache
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	commentRepo := mockRepo.NewMockCommentRepository(t)
	favoriteRepo := mockRepo.NewMockFavoriteRepository(t)
	cache := mockSvc.NewMockCatalogCache(t)

	service := NewCatalogService(CatalogServiceParams{
		ProductRepo:  productRepo,
		CommentRepo:  commentRepo,
		FavoriteRepo: favoriteRepo,
		Cache:        cache,
		Config:       &config.Config{},
		Logger:       newTestLogger(),
	})

	return catalogServiceFixtures{
		service:      service,
		productRepo:  productRepo,
		commentRepo:  commentRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
	}
}

func TestCatalogService_ListProducts_Pagination(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	products := []*entity.Product{{ID: uuid.New()}, {ID: uuid.New()}}

	fx.productRepo.EXPECT().
		List(ctx, repository.ProductFilter{
			SizeSlug: "large",
			Sort:     repository.SortPriceAsc,
			Page:     2,
			PerPage:  defaultPageSize,
		}).
		Return(products, int64(25), nil)

	page, err := fx.service.ListProducts(ctx, usecase.ListProductsInput{
		SizeSlug: "large",
		Sort:     repository.SortPriceAsc,
		Page:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, products, page.Products)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, defaultPageSize, page.PerPage)
	assert.Equal(t, 3, page.TotalPages)
}

func TestCatalogService_ListProducts_DefaultsPage(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		List(ctx, repository.ProductFilter{Page: 1, PerPage: defaultPageSize}).
		Return([]*entity.Product{}, int64(0), nil)

	page, err := fx.service.ListProducts(ctx, usecase.ListProductsInput{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}

func TestCatalogService_GetProduct_WithComments(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product := &entity.Product{ID: uuid.New(), Slug: "plain-mug"}
	comments := []*entity.Comment{{ID: uuid.New(), ProductID: product.ID, Text: "solid mug"}}

	fx.productRepo.EXPECT().
		FindBySlug(ctx, "plain-mug").
		Return(product, nil)

	fx.commentRepo.EXPECT().
		ListByProduct(ctx, product.ID).
		Return(comments, nil)

	gotProduct, gotComments, err := fx.service.GetProduct(ctx, "plain-mug")
	require.NoError(t, err)
	assert.Equal(t, product, gotProduct)
	assert.Equal(t, comments, gotComments)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	fx.productRepo.EXPECT().
		FindBySlug(ctx, "gone").
		Return(nil, repository.ErrProductNotFound)

	_, _, err := fx.service.GetProduct(ctx, "gone")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_Bestsellers_CacheHit(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	cached := []*entity.Product{{ID: uuid.New(), PurchasesCount: 40}}

	fx.cache.EXPECT().
		GetBestsellers(ctx, defaultBestsellerLimit).
		Return(cached, nil)

	got, err := fx.service.Bestsellers(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, got)

	fx.productRepo.AssertNotCalled(t, "Bestsellers", mock.Anything, mock.Anything)
}

func TestCatalogService_Bestsellers_CacheMiss(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	fromDB := []*entity.Product{{ID: uuid.New(), PurchasesCount: 40}}

	fx.cache.EXPECT().
		GetBestsellers(ctx, defaultBestsellerLimit).
		Return(nil, service.ErrCacheMiss)

	fx.productRepo.EXPECT().
		Bestsellers(ctx, defaultBestsellerLimit).
		Return(fromDB, nil)

	fx.cache.EXPECT().
		SetBestsellers(ctx, defaultBestsellerLimit, fromDB).
		Return(nil)

	got, err := fx.service.Bestsellers(ctx)
	require.NoError(t, err)
	assert.Equal(t, fromDB, got)
}

func TestCatalogService_Bestsellers_CacheFailureFallsBack(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	fromDB := []*entity.Product{{ID: uuid.New()}}

	fx.cache.EXPECT().
		GetBestsellers(ctx, defaultBestsellerLimit).
		Return(nil, errors.New("redis down"))

	fx.productRepo.EXPECT().
		Bestsellers(ctx, defaultBestsellerLimit).
		Return(fromDB, nil)

	fx.cache.EXPECT().
		SetBestsellers(ctx, defaultBestsellerLimit, fromDB).
		Return(errors.New("redis down"))

	got, err := fx.service.Bestsellers(ctx)
	require.NoError(t, err)
	assert.Equal(t, fromDB, got)
}

func TestCatalogService_AddComment_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID}, nil)

	fx.commentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Comment")).
		Return(nil)

	comment, err := fx.service.AddComment(ctx, usecase.AddCommentInput{
		UserID:    userID,
		ProductID: productID,
		Text:      "solid mug",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, comment.UserID)
	assert.Equal(t, productID, comment.ProductID)
	assert.Equal(t, "solid mug", comment.Text)
}

func TestCatalogService_DeleteComment_AuthorOnly(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	author := uuid.New()
	intruder := uuid.New()
	comment := &entity.Comment{ID: uuid.New(), UserID: author}

	fx.commentRepo.EXPECT().
		FindByID(ctx, comment.ID).
		Return(comment, nil)

	err := fx.service.DeleteComment(ctx, intruder, comment.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	fx.commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteComment_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	author := uuid.New()
	comment := &entity.Comment{ID: uuid.New(), UserID: author}

	fx.commentRepo.EXPECT().
		FindByID(ctx, comment.ID).
		Return(comment, nil)

	fx.commentRepo.EXPECT().
		Delete(ctx, comment.ID).
		Return(nil)

	err := fx.service.DeleteComment(ctx, author, comment.ID)
	require.NoError(t, err)
}

func TestCatalogService_ToggleFavorite_On(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.favoriteRepo.EXPECT().
		Find(ctx, userID, productID).
		Return(nil, repository.ErrFavoriteNotFound)

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID}, nil)

	fx.favoriteRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Favorite")).
		Return(nil)

	output, err := fx.service.ToggleFavorite(ctx, userID, productID)
	require.NoError(t, err)
	assert.True(t, output.Favorited)
}

func TestCatalogService_ToggleFavorite_Off(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.favoriteRepo.EXPECT().
		Find(ctx, userID, productID).
		Return(&entity.Favorite{ID: uuid.New(), UserID: userID, ProductID: productID}, nil)

	fx.favoriteRepo.EXPECT().
		Delete(ctx, userID, productID).
		Return(nil)

	output, err := fx.service.ToggleFavorite(ctx, userID, productID)
	require.NoError(t, err)
	assert.False(t, output.Favorited)
}
