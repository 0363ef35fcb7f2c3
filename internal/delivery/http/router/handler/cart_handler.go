package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

// GetCart handles the cart detail request.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartJSON(cart), "")
}

// AddProduct handles adding a product to the cart.
func (h *CartHandler) AddProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	output, err := h.uc.AddProduct(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	switch output.Result {
	case usecase.CartAdded:
		return response.Success(c, http.StatusCreated, map[string]string{"result": string(output.Result)}, "Product added to cart")
	case usecase.CartAlreadyInCart:
		return response.Success(c, http.StatusOK, map[string]string{"result": string(output.Result)}, "Product is already in the cart")
	case usecase.CartAlreadyPurchased:
		return errors.WithStack(domainerrors.ErrProductAlreadyPurchased)
	default:
		return errors.WithStack(domainerrors.ErrInternalError)
	}
}

// RemoveProduct handles removing a product from the cart.
func (h *CartHandler) RemoveProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	if err := h.uc.RemoveProduct(c.Request().Context(), userID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product removed from cart")
}
