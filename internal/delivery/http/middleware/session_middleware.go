package middleware

import (
	"net/http"

	"panel/config"
	deliverycontext "panel/internal/delivery/context"
	"panel/internal/delivery/http/response"
	"panel/internal/domain/entity"
	"panel/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session cookie on every protected route.
// Page routes and API routes fail differently: a browser gets a redirect to
// the landing page, an API caller gets a 401 body.
type SessionMiddleware struct {
	authUsecase usecase.AuthUsecase
	cookieName  string
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(authUsecase usecase.AuthUsecase, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		authUsecase: authUsecase,
		cookieName:  cfg.Session.CookieName,
	}
}

// RequirePage gates a server-rendered page; anonymous callers are sent to
// the landing page.
func (m *SessionMiddleware) RequirePage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.resolve(c)
		if err != nil {
			return c.Redirect(http.StatusFound, "/")
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// RequireAPI gates a JSON endpoint; anonymous callers get a 401 body and
// never see settings or entitlement data.
func (m *SessionMiddleware) RequireAPI(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.resolve(c)
		if err != nil {
			return response.Unauthorized(c, "SESSION_REQUIRED", "You must be logged in to do that.")
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// Optional resolves the session when present but lets anonymous requests
// through; the landing page uses it to decide between welcome and redirect.
func (m *SessionMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if session, err := m.resolve(c); err == nil {
			deliverycontext.SetSession(c, session)
		}

		return next(c)
	}
}

func (m *SessionMiddleware) resolve(c echo.Context) (*entity.Session, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, echo.ErrUnauthorized
	}

	return m.authUsecase.Authenticate(c.Request().Context(), cookie.Value)
}
