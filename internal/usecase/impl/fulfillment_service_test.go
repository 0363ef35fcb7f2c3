package impl

import (
	"context"
	"testing"

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

// fulfillmentServiceFixtures holds all test dependencies for fulfillment service tests.
type fulfillmentServiceFixtures struct {
	service     usecase.FulfillmentUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
	orderRepo   *mockRepo.MockOrderRepository
	gateway     *mockSvc.MockPaymentGateway
	cache       *mockSvc.MockCatalogCache
}

func createTestFulfillmentService(t *testing.T) fulfillmentServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	gateway := mockSvc.NewMockPaymentGateway(t)
	cache := mockSvc.NewMockCatalogCache(t)

	service := NewFulfillmentService(FulfillmentServiceParams{
		TxManager: txManager,
		Gateway:   gateway,
		Cache:     cache,
		Logger:    newTestLogger(),
	})

	return fulfillmentServiceFixtures{
		service:     service,
		txManager:   txManager,
		factory:     factory,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		cache:       cache,
	}
}

func (fx fulfillmentServiceFixtures) expectTransaction(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(passthroughTx(fx.factory))

	fx.factory.EXPECT().NewCartRepository().Return(fx.cartRepo).Maybe()
	fx.factory.EXPECT().NewProductRepository().Return(fx.productRepo).Maybe()
	fx.factory.EXPECT().NewOrderRepository().Return(fx.orderRepo).Maybe()
}

func completedEvent(orderID uuid.UUID) *service.WebhookEvent {
	return &service.WebhookEvent{
		ID:       "evt_123",
		Type:     service.EventCheckoutCompleted,
		Metadata: map[string]string{"order_id": orderID.String()},
	}
}

func paidOrderFixture(userID uuid.UUID) *entity.Order {
	return &entity.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Quantity: 1},
			{ProductID: uuid.New(), Quantity: 3},
		},
	}
}

func TestFulfillmentService_HandleWebhook_Completed(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	userID := uuid.New()
	order := paidOrderFixture(userID)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	payload := []byte(`{"type":"checkout.session.completed"}`)

	fx.gateway.EXPECT().
		VerifyWebhook(payload, "sig").
		Return(completedEvent(order.ID), nil)

	fx.expectTransaction(ctx)

	fx.orderRepo.EXPECT().
		MarkPaid(ctx, order.ID).
		Return(true, nil)

	fx.orderRepo.EXPECT().
		FindByID(ctx, order.ID).
		Return(order, nil)

	for _, item := range order.Items {
		fx.productRepo.EXPECT().
			IncrementPurchases(ctx, item.ProductID, item.Quantity).
			Return(nil)
	}

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		Clear(ctx, cart.ID).
		Return(nil)

	fx.cache.EXPECT().
		InvalidateBestsellers(ctx).
		Return(nil)

	output, err := fx.service.HandleWebhook(ctx, payload, "sig")
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentCompleted, output.Result)
	assert.Equal(t, order.ID, output.OrderID)
}

func TestFulfillmentService_HandleWebhook_SecondDeliveryIsNoop(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	order := paidOrderFixture(uuid.New())
	payload := []byte(`{"type":"checkout.session.completed"}`)

	fx.gateway.EXPECT().
		VerifyWebhook(payload, "sig").
		Return(completedEvent(order.ID), nil)

	fx.expectTransaction(ctx)

	// The conditional update matched zero rows: someone already paid it.
	fx.orderRepo.EXPECT().
		MarkPaid(ctx, order.ID).
		Return(false, nil)

	fx.orderRepo.EXPECT().
		FindByID(ctx, order.ID).
		Return(order, nil)

	output, err := fx.service.HandleWebhook(ctx, payload, "sig")
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentAlreadyPaid, output.Result)

	// A replay must not touch counters, carts, or the cache.
	fx.productRepo.AssertNotCalled(t, "IncrementPurchases", mock.Anything, mock.Anything, mock.Anything)
	fx.cartRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	fx.cache.AssertNotCalled(t, "InvalidateBestsellers", mock.Anything)
}

func TestFulfillmentService_HandleWebhook_InvalidSignature(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	payload := []byte(`{"type":"checkout.session.completed"}`)

	fx.gateway.EXPECT().
		VerifyWebhook(payload, "bad").
		Return(nil, domainerrors.ErrWebhookSignature)

	output, err := fx.service.HandleWebhook(ctx, payload, "bad")
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrWebhookSignature)

	// Nothing is mutated on a forged payload.
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestFulfillmentService_HandleWebhook_IgnoresOtherEvents(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	payload := []byte(`{"type":"payment_intent.created"}`)

	fx.gateway.EXPECT().
		VerifyWebhook(payload, "sig").
		Return(&service.WebhookEvent{ID: "evt_456", Type: "payment_intent.created"}, nil)

	output, err := fx.service.HandleWebhook(ctx, payload, "sig")
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentIgnored, output.Result)

	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestFulfillmentService_HandleWebhook_UnknownOrder(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	orderID := uuid.New()
	payload := []byte(`{"type":"checkout.session.completed"}`)

	fx.gateway.EXPECT().
		VerifyWebhook(payload, "sig").
		Return(completedEvent(orderID), nil)

	fx.expectTransaction(ctx)

	fx.orderRepo.EXPECT().
		MarkPaid(ctx, orderID).
		Return(false, nil)

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	output, err := fx.service.HandleWebhook(ctx, payload, "sig")
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentOrderNotFound, output.Result)
}

func TestFulfillmentService_ConfirmReturn_Fulfills(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	userID := uuid.New()
	order := paidOrderFixture(userID)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.expectTransaction(ctx)

	fx.orderRepo.EXPECT().
		FindLatestUnpaidByUserForUpdate(ctx, userID).
		Return(order, nil)

	fx.orderRepo.EXPECT().
		MarkPaid(ctx, order.ID).
		Return(true, nil)

	fx.orderRepo.EXPECT().
		FindByID(ctx, order.ID).
		Return(order, nil)

	for _, item := range order.Items {
		fx.productRepo.EXPECT().
			IncrementPurchases(ctx, item.ProductID, item.Quantity).
			Return(nil)
	}

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		Clear(ctx, cart.ID).
		Return(nil)

	fx.cache.EXPECT().
		InvalidateBestsellers(ctx).
		Return(nil)

	output, err := fx.service.ConfirmReturn(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentCompleted, output.Result)
	assert.Equal(t, order.ID, output.OrderID)
}

func TestFulfillmentService_ConfirmReturn_NothingUnpaid(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.expectTransaction(ctx)

	fx.orderRepo.EXPECT().
		FindLatestUnpaidByUserForUpdate(ctx, userID).
		Return(nil, repository.ErrOrderNotFound)

	output, err := fx.service.ConfirmReturn(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentOrderNotFound, output.Result)
}

func TestFulfillmentService_ConfirmReturn_CacheFailureIsAdvisory(t *testing.T) {
	fx := createTestFulfillmentService(t)

	ctx := context.Background()
	userID := uuid.New()
	order := paidOrderFixture(userID)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.expectTransaction(ctx)

	fx.orderRepo.EXPECT().
		FindLatestUnpaidByUserForUpdate(ctx, userID).
		Return(order, nil)

	fx.orderRepo.EXPECT().
		MarkPaid(ctx, order.ID).
		Return(true, nil)

	fx.orderRepo.EXPECT().
		FindByID(ctx, order.ID).
		Return(order, nil)

	for _, item := range order.Items {
		fx.productRepo.EXPECT().
			IncrementPurchases(ctx, item.ProductID, item.Quantity).
			Return(nil)
	}

	fx.cartRepo.EXPECT().
		GetOrCreate(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		Clear(ctx, cart.ID).
		Return(nil)

	fx.cache.EXPECT().
		InvalidateBestsellers(ctx).
		Return(errors.New("redis down"))

	output, err := fx.service.ConfirmReturn(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, usecase.FulfillmentCompleted, output.Result)
}
