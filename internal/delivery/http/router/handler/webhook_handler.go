package handler

import (
	"io"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/infra/payment"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	uc     usecase.FulfillmentUsecase
	logger *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler, injected by Fx.
func NewWebhookHandler(uc usecase.FulfillmentUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, logger: logger}
}

// HandlePayment verifies and processes a provider webhook. The raw body is
// read before any decoding because the signature covers the exact bytes sent.
func (h *WebhookHandler) HandlePayment(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_PAYLOAD", "Failed to read webhook body")
	}

	output, err := h.uc.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(payment.SignatureHeader))
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.Info("webhook processed",
		slog.String("result", string(output.Result)),
		slog.String("order_id", output.OrderID.String()),
	)

	return response.Success(c, http.StatusOK, map[string]any{
		"received": true,
		"result":   string(output.Result),
	}, "")
}
