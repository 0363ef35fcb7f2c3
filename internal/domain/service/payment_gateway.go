package service

import "context"

// Webhook event types emitted by the payment provider.
const (
	EventCheckoutCompleted = "checkout.session.completed"
)

// PaymentLine is one purchasable line of a checkout session. UnitAmount is
// the unit price in minor currency units (e.g. cents).
type PaymentLine struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// PaymentRequest describes the checkout session to create on the provider.
// Metadata is echoed back verbatim in webhook events.
type PaymentRequest struct {
	Currency   string
	Lines      []PaymentLine
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// PaymentSession is the provider's handle for a created checkout session.
// URL is the hosted payment page the buyer is redirected to.
type PaymentSession struct {
	ID  string
	URL string
}

// WebhookEvent is a verified notification from the payment provider.
type WebhookEvent struct {
	ID       string
	Type     string
	Metadata map[string]string
}

// PaymentGateway defines the interface to the external payment provider.
// Implementations carry their own credentials; nothing here reads globals.
type PaymentGateway interface {
	// CreateSession creates a hosted checkout session and returns its
	// redirect URL.
	CreateSession(ctx context.Context, req *PaymentRequest) (*PaymentSession, error)

	// VerifyWebhook checks the signature header against the raw payload and,
	// when valid, decodes the event. An invalid or stale signature is an error.
	VerifyWebhook(payload []byte, sigHeader string) (*WebhookEvent, error)
}
