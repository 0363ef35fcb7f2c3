package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// fulfillmentService implements the FulfillmentUsecase interface. Both
// triggers converge on fulfill inside a single transaction, so the paid
// transition and its side effects happen at most once per order no matter
// how many confirmations arrive or race.
type fulfillmentService struct {
	txManager repository.TransactionManager
	gateway   service.PaymentGateway
	cache     service.CatalogCache
	logger    *slog.Logger
}

// FulfillmentServiceParams holds dependencies for fulfillmentService, injected by Fx.
type FulfillmentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Gateway   service.PaymentGateway
	Cache     service.CatalogCache
	Logger    *slog.Logger
}

// NewFulfillmentService is the constructor for fulfillmentService.
func NewFulfillmentService(params FulfillmentServiceParams) usecase.FulfillmentUsecase {
	return &fulfillmentService{
		txManager: params.TxManager,
		gateway:   params.Gateway,
		cache:     params.Cache,
		logger:    params.Logger,
	}
}

func (srv *fulfillmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HandleWebhook verifies and processes a provider notification.
func (srv *fulfillmentService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (*usecase.FulfillmentOutput, error) {
	event, err := srv.gateway.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return nil, err
	}

	if event.Type != service.EventCheckoutCompleted {
		srv.log(ctx).Info("Ignoring webhook event", slog.String("type", event.Type))

		return &usecase.FulfillmentOutput{Result: usecase.FulfillmentIgnored}, nil
	}

	orderID, err := uuid.Parse(event.Metadata["order_id"])
	if err != nil {
		srv.log(ctx).Warn("Webhook event without a valid order id", slog.String("eventID", event.ID))

		return &usecase.FulfillmentOutput{Result: usecase.FulfillmentOrderNotFound}, nil
	}

	result := usecase.FulfillmentOrderNotFound
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		result, err = srv.fulfill(ctx, repoFactory, orderID)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.afterFulfillment(ctx, orderID, result)

	return &usecase.FulfillmentOutput{Result: result, OrderID: orderID}, nil
}

// ConfirmReturn fulfills the user's latest unpaid order when the buyer lands
// on the success redirect. The order row is locked for the transaction, so a
// racing webhook either waits or has already flipped the paid flag.
func (srv *fulfillmentService) ConfirmReturn(ctx context.Context, userID uuid.UUID) (*usecase.FulfillmentOutput, error) {
	result := usecase.FulfillmentOrderNotFound
	var orderID uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindLatestUnpaidByUserForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				// Nothing unpaid: either the webhook already fulfilled the
				// order or the user never checked out.
				result = usecase.FulfillmentOrderNotFound

				return nil
			}

			return err
		}
		orderID = order.ID

		result, err = srv.fulfill(ctx, repoFactory, order.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.afterFulfillment(ctx, orderID, result)

	return &usecase.FulfillmentOutput{Result: result, OrderID: orderID}, nil
}

// fulfill performs the paid transition and its side effects inside the
// caller's transaction. The conditional MarkPaid makes the transition
// exactly-once: only the attempt that flipped the flag increments the
// purchase counters and clears the cart.
func (srv *fulfillmentService) fulfill(ctx context.Context, repoFactory repository.RepositoryFactory, orderID uuid.UUID) (usecase.FulfillmentResult, error) {
	orderRepo := repoFactory.NewOrderRepository()

	transitioned, err := orderRepo.MarkPaid(ctx, orderID)
	if err != nil {
		return usecase.FulfillmentOrderNotFound, err
	}
	if !transitioned {
		if _, err := orderRepo.FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return usecase.FulfillmentOrderNotFound, nil
			}

			return usecase.FulfillmentOrderNotFound, err
		}

		return usecase.FulfillmentAlreadyPaid, nil
	}

	order, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return usecase.FulfillmentOrderNotFound, err
	}

	productRepo := repoFactory.NewProductRepository()
	for _, item := range order.Items {
		if err := productRepo.IncrementPurchases(ctx, item.ProductID, item.Quantity); err != nil {
			return usecase.FulfillmentOrderNotFound, err
		}
	}

	cartRepo := repoFactory.NewCartRepository()
	cart, err := cartRepo.GetOrCreate(ctx, order.UserID)
	if err != nil {
		return usecase.FulfillmentOrderNotFound, err
	}
	if err := cartRepo.Clear(ctx, cart.ID); err != nil {
		return usecase.FulfillmentOrderNotFound, err
	}

	return usecase.FulfillmentCompleted, nil
}

// afterFulfillment runs the advisory post-commit work for a completed
// fulfillment. Cache failures are logged, never propagated.
func (srv *fulfillmentService) afterFulfillment(ctx context.Context, orderID uuid.UUID, result usecase.FulfillmentResult) {
	if result != usecase.FulfillmentCompleted {
		return
	}

	srv.log(ctx).Info("Order fulfilled", slog.String("orderID", orderID.String()))

	if err := srv.cache.InvalidateBestsellers(ctx); err != nil {
		srv.log(ctx).Warn("bestseller cache invalidation failed", slog.String("error", err.Error()))
	}
}
