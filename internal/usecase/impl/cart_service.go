package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart with product details.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return srv.cartRepo.FindByUser(ctx, userID)
}

// AddProduct puts the product in the cart. Re-adding a present product and
// re-buying an owned product are both refused without changing state.
func (srv *cartService) AddProduct(ctx context.Context, userID, productID uuid.UUID) (*usecase.CartAddOutput, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	owned, err := srv.orderRepo.HasPaidItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if owned {
		return &usecase.CartAddOutput{Result: usecase.CartAlreadyPurchased}, nil
	}

	cart, err := srv.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if item, err := srv.cartRepo.FindItem(ctx, cart.ID, productID); err == nil {
		return &usecase.CartAddOutput{Result: usecase.CartAlreadyInCart, Item: item}, nil
	} else if !errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, err
	}

	item := &entity.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := srv.cartRepo.CreateItem(ctx, item); err != nil {
		// A concurrent add of the same product hit the unique constraint.
		if errors.Is(err, repository.ErrCartItemExists) {
			existing, findErr := srv.cartRepo.FindItem(ctx, cart.ID, productID)
			if findErr != nil {
				return nil, findErr
			}

			return &usecase.CartAddOutput{Result: usecase.CartAlreadyInCart, Item: existing}, nil
		}

		return nil, err
	}

	srv.log(ctx).Info("Product added to cart",
		slog.String("userID", userID.String()),
		slog.String("productID", productID.String()))

	return &usecase.CartAddOutput{Result: usecase.CartAdded, Item: item}, nil
}

// RemoveProduct drops the product's line from the cart.
func (srv *cartService) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error {
	cart, err := srv.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if err := srv.cartRepo.DeleteItem(ctx, cart.ID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound
		}

		return err
	}

	return nil
}
