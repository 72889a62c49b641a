// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"devicehub/internal/delivery/http/middleware"
	"devicehub/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	DeviceHandler     *handler.DeviceHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RequestMiddleware *middleware.RequestMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	deviceHandler     *handler.DeviceHandler
	authMiddleware    *middleware.AuthMiddleware
	requestMiddleware *middleware.RequestMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		deviceHandler:     params.DeviceHandler,
		authMiddleware:    params.AuthMiddleware,
		requestMiddleware: params.RequestMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestMiddleware.Handle)

	// Identity runs everywhere: public routes stay anonymous without a
	// header, but a bad token is rejected no matter which route it hits.
	e.Use(r.authMiddleware.Identify)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	e.POST("/register", r.userHandler.Register)
	e.POST("/login", r.userHandler.Login)

	// Device routes require an authenticated owner
	deviceGroup := e.Group("/device")
	deviceGroup.Use(r.authMiddleware.RequireAuth)
	{
		deviceGroup.POST("", r.deviceHandler.CreateDevice)
		deviceGroup.GET("/:id", r.deviceHandler.GetDevice)
		deviceGroup.PUT("/:id", r.deviceHandler.UpdateDevice)
		deviceGroup.DELETE("/:id", r.deviceHandler.DeleteDevice)
	}
}
