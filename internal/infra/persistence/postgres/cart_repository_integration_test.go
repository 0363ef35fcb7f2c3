package postgres_test

import (
	"context"
	"sync"
	"testing"

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

type cartRepositorySuite struct {
	suite.Suite

	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	carts     repository.CartRepository
	products  repository.ProductRepository
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.db, err = newTestDB(connStr)
	suite.Require().NoError(err)

	suite.carts = postgres.NewCartRepository(suite.db)
	suite.products = postgres.NewProductRepository(suite.db)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.db != nil {
		suite.NoError(closeTestDB(suite.db))
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *cartRepositorySuite) createUser() uuid.UUID {
	userM := &model.UserModel{
		Email:        gofakeit.Email(),
		Name:         gofakeit.Name(),
		PasswordHash: "not-a-real-hash",
	}
	suite.Require().NoError(suite.db.Create(userM).Error)

	return userM.ID
}

func (suite *cartRepositorySuite) createProduct() *entity.Product {
	product := &entity.Product{
		Name:         gofakeit.ProductName(),
		Slug:         gofakeit.UUID(),
		CurrentPrice: decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
	}
	suite.Require().NoError(suite.products.Create(suite.T().Context(), product))

	return product
}

func (suite *cartRepositorySuite) TestFindByUser_NoCartIsEmptyCart() {
	t := suite.T()

	userID := suite.createUser()

	cart, err := suite.carts.FindByUser(t.Context(), userID)
	require.NoError(t, err)
	require.Equal(t, userID, cart.UserID)
	require.Empty(t, cart.Items)
}

func (suite *cartRepositorySuite) TestGetOrCreate_Idempotent() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()

	cart, err := suite.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, cart.ID)

	again, err := suite.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, cart.ID, again.ID)
}

func (suite *cartRepositorySuite) TestGetOrCreate_ConcurrentSameCart() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan uuid.UUID, workers)
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			cart, err := suite.carts.GetOrCreate(ctx, userID)
			if err != nil {
				errs <- err
				return
			}
			results <- cart.ID
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Every racer converges on the same cart row.
	ids := make(map[uuid.UUID]struct{})
	for id := range results {
		ids[id] = struct{}{}
	}
	require.Len(t, ids, 1)
}

func (suite *cartRepositorySuite) TestCreateItem_DuplicateLineRejected() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct()

	cart, err := suite.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)

	item := &entity.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, suite.carts.CreateItem(ctx, item))
	require.NotEqual(t, uuid.Nil, item.ID)

	// Re-adding the same product hits the (cart_id, product_id) unique index.
	dup := &entity.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	err = suite.carts.CreateItem(ctx, dup)
	require.ErrorIs(t, err, repository.ErrCartItemExists)
}

func (suite *cartRepositorySuite) TestFindItem() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct()

	cart, err := suite.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)

	_, err = suite.carts.FindItem(ctx, cart.ID, product.ID)
	require.ErrorIs(t, err, repository.ErrCartItemNotFound)

	require.NoError(t, suite.carts.CreateItem(ctx, &entity.CartItem{
		CartID: cart.ID, ProductID: product.ID, Quantity: 1,
	}))

	got, err := suite.carts.FindItem(ctx, cart.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, product.ID, got.ProductID)
	require.False(t, got.AddedAt.IsZero())
}

func (suite *cartRepositorySuite) TestDeleteItem() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()
	product := suite.createProduct()

	cart, err := suite.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, suite.carts.CreateItem(ctx, &entity.CartItem{
		CartID: cart.ID, ProductID: product.ID, Quantity: 1,
	}))

	require.NoError(t, suite.carts.DeleteItem(ctx, cart.ID, product.ID))

	err = suite.carts.DeleteItem(ctx, cart.ID, product.ID)
	require.ErrorIs(t, err, repository.ErrCartItemNotFound)
}

func (suite *cartRepositorySuite) TestClear() {
	t := suite.T()
	ctx := t.Context()

	userID := suite.createUser()

	cart, err := suite.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)

	for range 3 {
		product := suite.createProduct()
		require.NoError(t, suite.carts.CreateItem(ctx, &entity.CartItem{
			CartID: cart.ID, ProductID: product.ID, Quantity: 1,
		}))
	}

	require.NoError(t, suite.carts.Clear(ctx, cart.ID))

	got, err := suite.carts.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, got.Items)

	// Clearing an already empty cart is a no-op.
	require.NoError(t, suite.carts.Clear(ctx, cart.ID))
}
