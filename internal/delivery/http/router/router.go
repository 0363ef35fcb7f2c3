// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	WebhookHandler  *handler.WebhookHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		webhookHandler:  params.WebhookHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Public catalog routes
	e.GET("/products", r.catalogHandler.ListProducts)
	e.GET("/products/bestsellers", r.catalogHandler.Bestsellers)
	e.GET("/products/:slug", r.catalogHandler.GetProduct)

	// Catalog routes that require authentication
	e.POST("/products/:id/comments", r.catalogHandler.AddComment, r.authMiddleware.Authenticate)
	e.DELETE("/comments/:id", r.catalogHandler.DeleteComment, r.authMiddleware.Authenticate)
	e.POST("/products/:id/favorite", r.catalogHandler.ToggleFavorite, r.authMiddleware.Authenticate)
	e.GET("/favorites", r.catalogHandler.ListFavorites, r.authMiddleware.Authenticate)

	// Cart routes that require authentication
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/add/:product_id", r.cartHandler.AddProduct)
		cartGroup.POST("/remove/:product_id", r.cartHandler.RemoveProduct)
	}

	// Checkout routes that require authentication
	e.GET("/checkout", r.checkoutHandler.ShowCheckout, r.authMiddleware.Authenticate)
	e.POST("/checkout", r.checkoutHandler.Checkout, r.authMiddleware.Authenticate)
	e.GET("/success", r.checkoutHandler.Success, r.authMiddleware.Authenticate)
	e.GET("/cancel", r.checkoutHandler.Cancel, r.authMiddleware.Authenticate)
	e.GET("/purchases", r.checkoutHandler.ListPurchases, r.authMiddleware.Authenticate)

	// Payment provider callback, authenticated by signature rather than JWT
	e.POST("/webhook", r.webhookHandler.HandlePayment)
}
