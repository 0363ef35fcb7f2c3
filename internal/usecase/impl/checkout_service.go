package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	gateway   service.PaymentGateway
	qrcode    service.QRCodeService
	payment   *config.PaymentConfig
	logger    *slog.Logger
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Gateway   service.PaymentGateway
	QRCode    service.QRCodeService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		gateway:   params.Gateway,
		qrcode:    params.QRCode,
		payment:   params.Config.Payment,
		logger:    params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout snapshots the cart into an order inside one transaction, then
// asks the payment provider for a hosted checkout session. Prices are frozen
// at their current discount-aware values; later catalog edits cannot change
// what this order charges.
func (srv *checkoutService) Checkout(ctx context.Context, input usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()
		orderRepo := repoFactory.NewOrderRepository()

		cart, err := cartRepo.FindByUser(ctx, input.UserID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domainerrors.ErrCartEmpty
		}

		items := make([]*entity.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			// Reload inside the transaction so the frozen price reflects
			// the product as it exists right now. A missing product aborts
			// the whole order.
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WrapMessage("cart references a missing product")
				}

				return err
			}

			items = append(items, &entity.OrderItem{
				ProductID: product.ID,
				Product:   product,
				Price:     product.ActualPrice(),
				Quantity:  line.Quantity,
			})
		}

		order = &entity.Order{
			UserID:          input.UserID,
			FullName:        input.FullName,
			Email:           input.Email,
			ShippingAddress: input.ShippingAddress,
			PhoneNumber:     input.PhoneNumber,
			Items:           items,
		}

		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order created",
		slog.String("orderID", order.ID.String()),
		slog.String("total", order.Total().String()))

	// The payment session is created outside the transaction: the order is
	// already committed, so a gateway failure leaves it unpaid and retryable.
	session, err := srv.gateway.CreateSession(ctx, srv.buildPaymentRequest(order))
	if err != nil {
		srv.log(ctx).Error("Payment session creation failed",
			slog.String("orderID", order.ID.String()),
			slog.String("error", err.Error()))

		return nil, err
	}

	return &usecase.CheckoutOutput{
		Order:      order,
		PaymentURL: session.URL,
		Total:      order.Total(),
	}, nil
}

// buildPaymentRequest maps the order snapshot to the gateway's descriptor:
// one line per item with the frozen unit price in minor units, and the order
// id in metadata so the webhook can find its way back.
func (srv *checkoutService) buildPaymentRequest(order *entity.Order) *service.PaymentRequest {
	lines := make([]service.PaymentLine, 0, len(order.Items))
	for _, item := range order.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		lines = append(lines, service.PaymentLine{
			Name:       name,
			UnitAmount: item.UnitAmountMinor(),
			Quantity:   item.Quantity,
		})
	}

	return &service.PaymentRequest{
		Currency:   srv.payment.Currency,
		Lines:      lines,
		SuccessURL: srv.payment.SuccessURL,
		CancelURL:  srv.payment.CancelURL,
		Metadata:   map[string]string{"order_id": order.ID.String()},
	}
}

// PaymentQR renders the payment URL as a PNG QR code.
func (srv *checkoutService) PaymentQR(_ context.Context, paymentURL string) ([]byte, error) {
	return srv.qrcode.GeneratePaymentQR(paymentURL)
}

// ListPurchases returns the user's paid orders, newest first.
func (srv *checkoutService) ListPurchases(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return srv.orderRepo.ListPaidByUser(ctx, userID)
}
