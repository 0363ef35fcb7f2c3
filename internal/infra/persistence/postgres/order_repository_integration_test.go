package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type orderRepositorySuite struct {
	suite.Suite

	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	orders    repository.OrderRepository
	products  repository.ProductRepository
	txManager repository.TransactionManager
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.db, err = newTestDB(connStr)
	suite.Require().NoError(err)

	suite.orders = postgres.NewOrderRepository(suite.db)
	suite.products = postgres.NewProductRepository(suite.db)
	suite.txManager = postgres.NewTransactionManager(suite.db)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	if suite.db != nil {
		suite.NoError(closeTestDB(suite.db))
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *orderRepositorySuite) createUser() uuid.UUID {
	userM := &model.UserModel{
		Email:        gofakeit.Email(),
		Name:         gofakeit.Name(),
		PasswordHash: "not-a-real-hash",
	}
	suite.Require().NoError(suite.db.Create(userM).Error)

	return userM.ID
}

func (suite *orderRepositorySuite) createProduct(price string) *entity.Product {
	product := &entity.Product{
		Name:         gofakeit.ProductName(),
		Slug:         gofakeit.UUID(),
		CurrentPrice: decimal.RequireFromString(price),
	}
	suite.Require().NoError(suite.products.Create(suite.T().Context(), product))

	return product
}

func (suite *orderRepositorySuite) createOrder(userID uuid.UUID, items ...*entity.OrderItem) *entity.Order {
	order := &entity.Order{
		UserID:          userID,
		FullName:        gofakeit.Name(),
		Email:           gofakeit.Email(),
		ShippingAddress: gofakeit.Address().Address,
		PhoneNumber:     gofakeit.Phone(),
		Items:           items,
	}
	suite.Require().NoError(suite.orders.Create(suite.T().Context(), order))

	return order
}

func (suite *orderRepositorySuite) TestCreateAndFindByID() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct("19.90")

	order := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID,
		Price:     decimal.RequireFromString("9.99"),
		Quantity:  2,
	})
	require.NotEqual(t, uuid.Nil, order.ID)

	got, err := suite.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)

	require.Equal(t, order.UserID, got.UserID)
	require.Equal(t, order.FullName, got.FullName)
	require.False(t, got.Paid)
	require.Len(t, got.Items, 1)

	// The snapshot price survives the round trip exactly, independent of the
	// product's live price.
	require.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("9.99")))
	require.Equal(t, 2, got.Items[0].Quantity)
	require.NotNil(t, got.Items[0].Product)
	require.Equal(t, product.ID, got.Items[0].Product.ID)
}

func (suite *orderRepositorySuite) TestFindByID_NotFound() {
	t := suite.T()

	_, err := suite.orders.FindByID(t.Context(), uuid.New())
	require.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func (suite *orderRepositorySuite) TestMarkPaid_ExactlyOnce() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct("5.00")
	order := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID,
		Price:     product.CurrentPrice,
		Quantity:  1,
	})

	paid, err := suite.orders.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, paid)

	// A replay matches zero rows.
	paid, err = suite.orders.MarkPaid(ctx, order.ID)
	require.NoError(t, err)
	require.False(t, paid)
}

func (suite *orderRepositorySuite) TestMarkPaid_ConcurrentSingleWinner() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct("5.00")
	order := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID,
		Price:     product.CurrentPrice,
		Quantity:  1,
	})

	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			paid, err := suite.orders.MarkPaid(ctx, order.ID)
			if err != nil {
				results <- false
				return
			}
			results <- paid
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for paid := range results {
		if paid {
			winners++
		}
	}
	require.Equal(t, 1, winners)
}

func (suite *orderRepositorySuite) TestHasPaidItem() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct("12.50")
	order := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID,
		Price:     product.CurrentPrice,
		Quantity:  1,
	})

	// Unpaid orders do not count as ownership.
	owned, err := suite.orders.HasPaidItem(ctx, userID, product.ID)
	require.NoError(t, err)
	require.False(t, owned)

	_, err = suite.orders.MarkPaid(ctx, order.ID)
	require.NoError(t, err)

	owned, err = suite.orders.HasPaidItem(ctx, userID, product.ID)
	require.NoError(t, err)
	require.True(t, owned)

	// Another user never owns it.
	owned, err = suite.orders.HasPaidItem(ctx, suite.createUser(), product.ID)
	require.NoError(t, err)
	require.False(t, owned)
}

func (suite *orderRepositorySuite) TestListPaidByUser_NewestFirst() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct("3.00")

	first := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID, Price: product.CurrentPrice, Quantity: 1,
	})
	time.Sleep(10 * time.Millisecond)
	second := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID, Price: product.CurrentPrice, Quantity: 1,
	})
	unpaid := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID, Price: product.CurrentPrice, Quantity: 1,
	})

	for _, order := range []*entity.Order{first, second} {
		_, err := suite.orders.MarkPaid(ctx, order.ID)
		require.NoError(t, err)
	}

	orders, err := suite.orders.ListPaidByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)

	for _, order := range orders {
		require.NotEqual(t, unpaid.ID, order.ID)
	}
}

func (suite *orderRepositorySuite) TestFindLatestUnpaidByUserForUpdate() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct("7.77")

	stale := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID, Price: product.CurrentPrice, Quantity: 1,
	})
	time.Sleep(10 * time.Millisecond)
	latest := suite.createOrder(userID, &entity.OrderItem{
		ProductID: product.ID, Price: product.CurrentPrice, Quantity: 2,
	})

	err := suite.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		orderRepo := factory.NewOrderRepository()

		got, err := orderRepo.FindLatestUnpaidByUserForUpdate(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, latest.ID, got.ID)
		require.Len(t, got.Items, 1)
		require.Equal(t, 2, got.Items[0].Quantity)

		_, err = orderRepo.MarkPaid(ctx, got.ID)
		return err
	})
	require.NoError(t, err)

	// The stale order is now the only unpaid one left.
	err = suite.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		got, err := factory.NewOrderRepository().FindLatestUnpaidByUserForUpdate(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, stale.ID, got.ID)
		return nil
	})
	require.NoError(t, err)
}

func (suite *orderRepositorySuite) TestFindLatestUnpaidByUserForUpdate_NothingUnpaid() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()

	err := suite.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		_, err := factory.NewOrderRepository().FindLatestUnpaidByUserForUpdate(ctx, userID)
		return err
	})
	require.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func (suite *orderRepositorySuite) TestIncrementPurchases_ConcurrentLosesNothing() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("1.00")

	const workers = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- suite.products.IncrementPurchases(ctx, product.ID, 2)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := suite.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, workers*2, got.PurchasesCount)
}
