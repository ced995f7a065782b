// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"panel/internal/delivery/http/middleware"
	"panel/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	PageHandler       *handler.PageHandler
	SettingsHandler   *handler.SettingsHandler
	PaymentHandler    *handler.PaymentHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	pageHandler       *handler.PageHandler
	settingsHandler   *handler.SettingsHandler
	paymentHandler    *handler.PaymentHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		pageHandler:       params.PageHandler,
		settingsHandler:   params.SettingsHandler,
		paymentHandler:    params.PaymentHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	e.StaticFS("/static", handler.StaticFilesFS())

	// Public pages and the OAuth flow
	e.GET("/", r.pageHandler.Index, r.sessionMiddleware.Optional)
	e.GET("/login", r.authHandler.Login)
	e.GET("/callback", r.authHandler.Callback)
	e.GET("/logout", r.authHandler.Logout)
	e.GET("/payment-cancel", r.pageHandler.PaymentCancel)

	// Pages that need a session; anonymous browsers bounce to the landing page
	pages := e.Group("")
	pages.Use(r.sessionMiddleware.RequirePage)
	{
		pages.GET("/dashboard", r.pageHandler.Dashboard)
		pages.GET("/manage/:guildId", r.pageHandler.Manage)
		pages.GET("/premium", r.pageHandler.Premium)
		pages.GET("/payment-success", r.pageHandler.PaymentSuccess)
	}

	// JSON APIs; anonymous callers get 401 bodies
	api := e.Group("/api")
	{
		// The webhook authenticates by provider signature, not by session
		api.POST("/paypal-webhook", r.paymentHandler.Webhook)

		authed := api.Group("")
		authed.Use(r.sessionMiddleware.RequireAPI)
		{
			authed.POST("/settings/:guildId/welcome", r.settingsHandler.UpdateWelcome)
			authed.POST("/settings/:guildId/tickets", r.settingsHandler.UpdateTickets)
			authed.POST("/create-payment", r.paymentHandler.CreatePayment)
			authed.POST("/claim-trial-vip", r.paymentHandler.ClaimTrial)
		}
	}
}
