// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"panel/config"
	"panel/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler holds dependencies for the login, callback and logout routes.
type AuthHandler struct {
	uc         usecase.AuthUsecase
	cookieName string
	secure     bool
	ttl        time.Duration
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		cookieName: cfg.Session.CookieName,
		secure:     cfg.Session.Secure,
		ttl:        cfg.Session.TTL,
		logger:     logger,
	}
}

// Login redirects the browser to the Discord authorize URL.
func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.uc.LoginURL())
}

// Callback completes the OAuth flow. On any failure the browser lands back
// on the home page with a generic error marker; the reason stays in the
// server log, and the authorization code stays out of it.
func (h *AuthHandler) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")

	output, err := h.uc.HandleCallback(c.Request().Context(), state, code)
	if err != nil {
		h.logger.Warn("OAuth callback failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/?error=login_failed")
	}

	c.SetCookie(h.sessionCookie(output.CookieValue, h.ttl))

	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
			h.logger.Error("Logout failed", slog.Any("error", err))
		}
	}

	c.SetCookie(h.sessionCookie("", -time.Hour))

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
