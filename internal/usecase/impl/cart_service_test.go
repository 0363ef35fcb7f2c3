package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
	orderRepo   *mockRepo.MockOrderRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)

	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
		Logger:      newTestLogger(),
	})

	return cartServiceFixtures{
		service:     service,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func TestCartService_AddProduct_New(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID}, nil)

	fx.orderRepo.EXPECT().
		HasPaidItem(ctx, userID, productID).
		Return(false, nil)

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		FindItem(ctx, cart.ID, productID).
		Return(nil, repository.ErrCartItemNotFound)

	fx.cartRepo.EXPECT().
		CreateItem(ctx, mock.AnythingOfType("*entity.CartItem")).
		Return(nil)

	output, err := fx.service.AddProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, usecase.CartAdded, output.Result)
	require.NotNil(t, output.Item)
	assert.Equal(t, cart.ID, output.Item.CartID)
	assert.Equal(t, productID, output.Item.ProductID)
	assert.Equal(t, 1, output.Item.Quantity)
}

func TestCartService_AddProduct_AlreadyInCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	existing := &entity.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: productID, Quantity: 1}

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID}, nil)

	fx.orderRepo.EXPECT().
		HasPaidItem(ctx, userID, productID).
		Return(false, nil)

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		FindItem(ctx, cart.ID, productID).
		Return(existing, nil)

	output, err := fx.service.AddProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, usecase.CartAlreadyInCart, output.Result)
	assert.Equal(t, existing, output.Item)

	// The quantity stays at one; no new line is created.
	fx.cartRepo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestCartService_AddProduct_AlreadyPurchased(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID}, nil)

	fx.orderRepo.EXPECT().
		HasPaidItem(ctx, userID, productID).
		Return(true, nil)

	output, err := fx.service.AddProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, usecase.CartAlreadyPurchased, output.Result)

	fx.cartRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
}

func TestCartService_AddProduct_ConcurrentAdd(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	existing := &entity.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: productID, Quantity: 1}

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID}, nil)

	fx.orderRepo.EXPECT().
		HasPaidItem(ctx, userID, productID).
		Return(false, nil)

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	// First lookup misses, then a concurrent request wins the insert race.
	fx.cartRepo.EXPECT().
		FindItem(ctx, cart.ID, productID).
		Return(nil, repository.ErrCartItemNotFound).
		Once()

	fx.cartRepo.EXPECT().
		CreateItem(ctx, mock.AnythingOfType("*entity.CartItem")).
		Return(repository.ErrCartItemExists)

	fx.cartRepo.EXPECT().
		FindItem(ctx, cart.ID, productID).
		Return(existing, nil).
		Once()

	output, err := fx.service.AddProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, usecase.CartAlreadyInCart, output.Result)
	assert.Equal(t, existing, output.Item)
}

func TestCartService_AddProduct_ProductNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	output, err := fx.service.AddProduct(ctx, userID, productID)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_RemoveProduct_Success(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		DeleteItem(ctx, cart.ID, productID).
		Return(nil)

	err := fx.service.RemoveProduct(ctx, userID, productID)
	require.NoError(t, err)
}

func TestCartService_RemoveProduct_NotInCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		DeleteItem(ctx, cart.ID, productID).
		Return(repository.ErrCartItemNotFound)

	err := fx.service.RemoveProduct(ctx, userID, productID)
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_GetCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(cart, nil)

	got, err := fx.service.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart, got)
}
