// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"easesupply/internal/delivery/http/middleware"
	"easesupply/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	DeviceHandler  *handler.DeviceHandler
	EventsHandler  *handler.EventsHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	deviceHandler  *handler.DeviceHandler
	eventsHandler  *handler.EventsHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		deviceHandler:  params.DeviceHandler,
		eventsHandler:  params.EventsHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authed := r.authMiddleware.Authenticate
	withUser := r.authMiddleware.RequireUser

	// User directory. Registration and role selection only need a valid
	// token; the directory entry does not exist yet at that point.
	userGroup := e.Group("/users")
	userGroup.Use(authed)
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.PUT("/role", r.userHandler.SelectRole)
		userGroup.GET("/me", r.userHandler.Me)
		userGroup.GET("", r.userHandler.List)
		userGroup.GET("/:accountId", r.userHandler.Get)
		userGroup.PUT("/:accountId", r.userHandler.Update)
		userGroup.DELETE("/:accountId", r.userHandler.Delete)
	}

	// Catalog. Nearby discovery and QR rendering are public; everything
	// else acts on behalf of a registered user.
	e.GET("/products/nearby", r.productHandler.Nearby)
	e.GET("/products/:id/qrcode", r.productHandler.QRCode)

	productGroup := e.Group("/products")
	productGroup.Use(authed, withUser)
	{
		productGroup.POST("", r.productHandler.Create)
		productGroup.GET("", r.productHandler.List)
		productGroup.PUT("/:id", r.productHandler.Update)
		productGroup.DELETE("/:id", r.productHandler.Delete)
	}

	// Order ledger
	orderGroup := e.Group("/orders")
	orderGroup.Use(authed, withUser)
	{
		orderGroup.POST("", r.orderHandler.Create)
		orderGroup.GET("", r.orderHandler.List)
		orderGroup.PATCH("", r.orderHandler.UpdateStatus)
	}

	// Push registrations
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(authed, withUser)
	{
		deviceGroup.POST("", r.deviceHandler.Register)
	}

	// Realtime order events
	e.GET("/events", r.eventsHandler.Subscribe, authed, withUser)
}
