package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for checkout and purchase handlers.
type CheckoutHandler struct {
	checkoutUC    usecase.CheckoutUsecase
	fulfillmentUC usecase.FulfillmentUsecase
	cartUC        usecase.CartUsecase
	logger        *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(
	checkoutUC usecase.CheckoutUsecase,
	fulfillmentUC usecase.FulfillmentUsecase,
	cartUC usecase.CartUsecase,
	logger *slog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC:    checkoutUC,
		fulfillmentUC: fulfillmentUC,
		cartUC:        cartUC,
		logger:        logger,
	}
}

// checkoutRequest is the validated order form.
type checkoutRequest struct {
	FullName        string `json:"full_name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
	PhoneNumber     string `json:"phone_number" validate:"required,max=32"`
}

// ShowCheckout returns the current cart as a checkout preview.
func (h *CheckoutHandler) ShowCheckout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartJSON(cart), "")
}

// Checkout snapshots the cart into an order and redirects the buyer to the
// hosted payment page. With ?format=qr the payment URL is returned as a PNG
// QR code instead of a redirect.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.checkoutUC.Checkout(c.Request().Context(), usecase.CheckoutInput{
		UserID:          userID,
		FullName:        req.FullName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("format") == "qr" {
		png, err := h.checkoutUC.PaymentQR(c.Request().Context(), output.PaymentURL)
		if err != nil {
			return errors.WithStack(err)
		}

		return c.Blob(http.StatusOK, "image/png", png)
	}

	return c.Redirect(http.StatusSeeOther, output.PaymentURL)
}

// Success is the landing page after the provider redirects the buyer back.
// It opportunistically fulfills the latest unpaid order; the webhook remains
// the source of truth, so the outcome here is reported but never an error.
func (h *CheckoutHandler) Success(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.fulfillmentUC.ConfirmReturn(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Thank you for your purchase"
	if output.Result == usecase.FulfillmentOrderNotFound {
		message = "Payment is being processed"
	}

	return response.Success(c, http.StatusOK, map[string]string{"result": string(output.Result)}, message)
}

// Cancel is the landing page after the buyer abandons the payment page.
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "Payment cancelled, your cart is untouched")
}

// ListPurchases returns the user's paid orders.
func (h *CheckoutHandler) ListPurchases(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.checkoutUC.ListPurchases(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	orderList := make([]*orderJSON, 0, len(orders))
	for _, order := range orders {
		orderList = append(orderList, toOrderJSON(order))
	}

	return response.Success(c, http.StatusOK, orderList, "")
}
