package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CheckoutInput carries the validated order form. Validation happens at the
// delivery boundary; by the time this struct reaches the use case its fields
// are trusted.
type CheckoutInput struct {
	UserID          uuid.UUID
	FullName        string
	Email           string
	ShippingAddress string
	PhoneNumber     string
}

// --- Output DTOs ---

// CheckoutOutput is the result of a successful checkout: a committed order
// and the hosted payment page to redirect the buyer to.
type CheckoutOutput struct {
	Order      *entity.Order
	PaymentURL string
	Total      decimal.Decimal
}

// FulfillmentResult enumerates the outcomes of a fulfillment attempt.
type FulfillmentResult string

const (
	// FulfillmentCompleted means this attempt performed the paid transition
	// and its side effects.
	FulfillmentCompleted FulfillmentResult = "completed"
	// FulfillmentAlreadyPaid means another attempt got there first; nothing
	// was changed.
	FulfillmentAlreadyPaid FulfillmentResult = "already_paid"
	// FulfillmentOrderNotFound means no matching order exists.
	FulfillmentOrderNotFound FulfillmentResult = "order_not_found"
	// FulfillmentIgnored means the event type carries no fulfillment
	// semantics and was acknowledged without side effects.
	FulfillmentIgnored FulfillmentResult = "ignored"
)

// FulfillmentOutput reports what a fulfillment attempt did.
type FulfillmentOutput struct {
	Result  FulfillmentResult
	OrderID uuid.UUID
}

// CheckoutUsecase turns a cart into an order and a payment session.
type CheckoutUsecase interface {
	// Checkout snapshots the cart into an order atomically, then creates a
	// payment session for it. A gateway failure leaves the committed order
	// unpaid and is reported as an error.
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutOutput, error)

	// PaymentQR renders the order's payment URL as a PNG QR code.
	PaymentQR(ctx context.Context, paymentURL string) ([]byte, error)

	// ListPurchases returns the user's paid orders, newest first.
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}

// FulfillmentUsecase reconciles provider payment confirmations with orders.
type FulfillmentUsecase interface {
	// HandleWebhook verifies the signature, decodes the event and fulfills
	// the order named in its metadata. Unknown event types are a no-op.
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (*FulfillmentOutput, error)

	// ConfirmReturn fulfills the user's latest unpaid order after the buyer
	// lands on the success redirect. Safe to race with HandleWebhook.
	ConfirmReturn(ctx context.Context, userID uuid.UUID) (*FulfillmentOutput, error)
}
