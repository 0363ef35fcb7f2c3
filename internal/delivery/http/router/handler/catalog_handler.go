package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for catalog browsing handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: logger}
}

// ListProducts handles the catalog listing request with filters and sorting.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	discountOnly, _ := strconv.ParseBool(c.QueryParam("discount"))

	output, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		SizeSlug:     c.QueryParam("size"),
		MaterialSlug: c.QueryParam("material"),
		DiscountOnly: discountOnly,
		Sort:         c.QueryParam("sort"),
		Page:         page,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"products":    toProductListJSON(output.Products),
		"total":       output.Total,
		"page":        output.Page,
		"per_page":    output.PerPage,
		"total_pages": output.TotalPages,
	}, "")
}

// GetProduct handles the product detail request.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, comments, err := h.uc.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	commentList := make([]*commentJSON, 0, len(comments))
	for _, comment := range comments {
		commentList = append(commentList, toCommentJSON(comment))
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"product":  toProductJSON(product),
		"comments": commentList,
	}, "")
}

// Bestsellers handles the bestseller listing request.
func (h *CatalogHandler) Bestsellers(c echo.Context) error {
	products, err := h.uc.Bestsellers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductListJSON(products), "")
}

// commentRequest is the validated comment form.
type commentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// AddComment handles posting a comment on a product.
func (h *CatalogHandler) AddComment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.uc.AddComment(c.Request().Context(), usecase.AddCommentInput{
		UserID:    userID,
		ProductID: productID,
		Text:      req.Text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentJSON(comment), "Comment added")
}

// DeleteComment handles removing a comment by its author.
func (h *CatalogHandler) DeleteComment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid comment id")
	}

	if err := h.uc.DeleteComment(c.Request().Context(), userID, commentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted")
}

// ToggleFavorite handles flipping the favorite state of a product.
func (h *CatalogHandler) ToggleFavorite(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	output, err := h.uc.ToggleFavorite(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Product removed from favorites"
	if output.Favorited {
		message = "Product added to favorites"
	}

	return response.Success(c, http.StatusOK, map[string]bool{"favorited": output.Favorited}, message)
}

// ListFavorites handles listing the user's favorites.
func (h *CatalogHandler) ListFavorites(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	favorites, err := h.uc.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	favoriteList := make([]*favoriteJSON, 0, len(favorites))
	for _, favorite := range favorites {
		favoriteList = append(favoriteList, &favoriteJSON{
			ID:      favorite.ID.String(),
			Product: toProductJSON(favorite.Product),
		})
	}

	return response.Success(c, http.StatusOK, favoriteList, "")
}
