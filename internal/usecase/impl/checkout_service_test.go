package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// checkoutServiceFixtures holds all test dependencies for checkout service tests.
type checkoutServiceFixtures struct {
	service     usecase.CheckoutUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
	orderRepo   *mockRepo.MockOrderRepository
	gateway     *mockSvc.MockPaymentGateway
	qrcode      *mockSvc.MockQRCodeService
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	gateway := mockSvc.NewMockPaymentGateway(t)
	qrcode := mockSvc.NewMockQRCodeService(t)

	service := NewCheckoutService(CheckoutServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Gateway:   gateway,
		QRCode:    qrcode,
		Config:    newTestConfig(),
		Logger:    newTestLogger(),
	})

	return checkoutServiceFixtures{
		service:     service,
		txManager:   txManager,
		factory:     factory,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		qrcode:      qrcode,
	}
}

func (fx checkoutServiceFixtures) expectTransaction(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(passthroughTx(fx.factory))

	fx.factory.EXPECT().NewCartRepository().Return(fx.cartRepo).Maybe()
	fx.factory.EXPECT().NewProductRepository().Return(fx.productRepo).Maybe()
	fx.factory.EXPECT().NewOrderRepository().Return(fx.orderRepo).Maybe()
}

func checkoutInput(userID uuid.UUID) usecase.CheckoutInput {
	return usecase.CheckoutInput{
		UserID:          userID,
		FullName:        "Alice Example",
		Email:           "alice@example.com",
		ShippingAddress: "1 Main St, Springfield",
		PhoneNumber:     "+15550100",
	}
}

func TestCheckoutService_Checkout_FreezesDiscountedPrices(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()

	plain := &entity.Product{
		ID:           uuid.New(),
		Name:         "Plain Mug",
		CurrentPrice: decimal.RequireFromString("10.00"),
	}
	discounted := &entity.Product{
		ID:                 uuid.New(),
		Name:               "Sale Plate",
		CurrentPrice:       decimal.RequireFromString("9.99"),
		DiscountPrice:      decimal.RequireFromString("5.00"),
		DiscountPercentage: 50,
	}

	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []*entity.CartItem{
			{CartID: uuid.New(), ProductID: plain.ID, Quantity: 1},
			{CartID: uuid.New(), ProductID: discounted.ID, Quantity: 2},
		},
	}

	fx.expectTransaction(ctx)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(cart, nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, plain.ID).
		Return(plain, nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, discounted.ID).
		Return(discounted, nil)

	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	var captured *service.PaymentRequest
	fx.gateway.EXPECT().
		CreateSession(ctx, mock.AnythingOfType("*service.PaymentRequest")).
		Run(func(_ context.Context, req *service.PaymentRequest) {
			captured = req
		}).
		Return(&service.PaymentSession{ID: "cs_123", URL: "https://pay.example.com/cs_123"}, nil)

	output, err := fx.service.Checkout(ctx, checkoutInput(userID))
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_123", output.PaymentURL)
	assert.True(t, output.Total.Equal(decimal.RequireFromString("20.00")),
		"expected total 20.00, got %s", output.Total)

	// The descriptor carries the frozen prices in minor units.
	require.NotNil(t, captured)
	assert.Equal(t, "usd", captured.Currency)
	require.Len(t, captured.Lines, 2)
	assert.Equal(t, int64(1000), captured.Lines[0].UnitAmount)
	assert.Equal(t, 1, captured.Lines[0].Quantity)
	assert.Equal(t, int64(500), captured.Lines[1].UnitAmount)
	assert.Equal(t, 2, captured.Lines[1].Quantity)
	assert.Equal(t, output.Order.ID.String(), captured.Metadata["order_id"])
	assert.Equal(t, "https://shop.example.com/success", captured.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cancel", captured.CancelURL)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.expectTransaction(ctx)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(&entity.Cart{ID: uuid.New(), UserID: userID}, nil)

	output, err := fx.service.Checkout(ctx, checkoutInput(userID))
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)

	// No order and no payment session when the cart is empty.
	fx.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCheckoutService_Checkout_GatewayFailureKeepsOrder(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{
		ID:           uuid.New(),
		Name:         "Plain Mug",
		CurrentPrice: decimal.RequireFromString("10.00"),
	}
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []*entity.CartItem{{CartID: uuid.New(), ProductID: product.ID, Quantity: 1}},
	}

	fx.expectTransaction(ctx)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(cart, nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)

	// The order commit succeeds before the gateway is asked for a session.
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	fx.gateway.EXPECT().
		CreateSession(ctx, mock.AnythingOfType("*service.PaymentRequest")).
		Return(nil, domainerrors.ErrPaymentSession)

	output, err := fx.service.Checkout(ctx, checkoutInput(userID))
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentSession)
}

func TestCheckoutService_Checkout_MissingProductAborts(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []*entity.CartItem{{CartID: uuid.New(), ProductID: productID, Quantity: 1}},
	}

	fx.expectTransaction(ctx)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(cart, nil)

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, errors.New("record not found"))

	output, err := fx.service.Checkout(ctx, checkoutInput(userID))
	assert.Nil(t, output)
	assert.Error(t, err)

	fx.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_PaymentQR(t *testing.T) {
	fx := createTestCheckoutService(t)

	png := []byte{0x89, 0x50, 0x4e, 0x47}
	fx.qrcode.EXPECT().
		GeneratePaymentQR("https://pay.example.com/cs_123").
		Return(png, nil)

	got, err := fx.service.PaymentQR(context.Background(), "https://pay.example.com/cs_123")
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestCheckoutService_ListPurchases(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	orders := []*entity.Order{{ID: uuid.New(), UserID: userID, Paid: true}}

	fx.orderRepo.EXPECT().
		ListPaidByUser(ctx, userID).
		Return(orders, nil)

	got, err := fx.service.ListPurchases(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, orders, got)
}
