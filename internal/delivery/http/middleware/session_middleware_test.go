package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"panel/config"
	deliverycontext "panel/internal/delivery/context"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	mockusecase "panel/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCookieName = "panel_session"

func newSessionMiddleware(t *testing.T) (*SessionMiddleware, *mockusecase.MockAuthUsecase) {
	t.Helper()

	authUsecase := mockusecase.NewMockAuthUsecase(t)
	cfg := &config.Config{Session: &config.SessionConfig{CookieName: testCookieName}}

	return NewSessionMiddleware(authUsecase, cfg), authUsecase
}

// invoke runs the wrapped handler against a bare GET request, optionally
// carrying a session cookie, and reports whether the inner handler ran and
// what session it observed.
func invoke(t *testing.T, mw echo.MiddlewareFunc, cookieValue string) (*httptest.ResponseRecorder, bool, *entity.Session) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		nextRan bool
		seen    *entity.Session
	)
	handler := mw(func(c echo.Context) error {
		nextRan = true
		seen = deliverycontext.GetSession(c)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, nextRan, seen
}

func TestSessionMiddleware_RequirePage_AnonymousRedirectsToLanding(t *testing.T) {
	mw, _ := newSessionMiddleware(t)

	// No cookie at all: the page never renders and the cookie is never
	// handed to the auth layer.
	rec, nextRan, _ := invoke(t, mw.RequirePage, "")

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionMiddleware_RequirePage_RejectedCookieRedirectsToLanding(t *testing.T) {
	mw, authUsecase := newSessionMiddleware(t)

	authUsecase.EXPECT().
		Authenticate(mock.Anything, "tampered").
		Return(nil, domainerrors.ErrSessionRequired)

	rec, nextRan, _ := invoke(t, mw.RequirePage, "tampered")

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionMiddleware_RequirePage_ValidCookieRendersWithSession(t *testing.T) {
	mw, authUsecase := newSessionMiddleware(t)

	session := &entity.Session{Token: "tok-1", UserID: "user-1"}
	authUsecase.EXPECT().
		Authenticate(mock.Anything, "sealed").
		Return(session, nil)

	rec, nextRan, seen := invoke(t, mw.RequirePage, "sealed")

	assert.True(t, nextRan)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
}

func TestSessionMiddleware_RequireAPI_AnonymousGetsUnauthorizedBody(t *testing.T) {
	mw, _ := newSessionMiddleware(t)

	rec, nextRan, _ := invoke(t, mw.RequireAPI, "")

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "SESSION_REQUIRED", body.Error.Code)
}

func TestSessionMiddleware_RequireAPI_RejectedCookieGetsUnauthorizedBody(t *testing.T) {
	mw, authUsecase := newSessionMiddleware(t)

	authUsecase.EXPECT().
		Authenticate(mock.Anything, "expired").
		Return(nil, domainerrors.ErrSessionRequired)

	rec, nextRan, _ := invoke(t, mw.RequireAPI, "expired")

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_RequireAPI_ValidCookiePassesThrough(t *testing.T) {
	mw, authUsecase := newSessionMiddleware(t)

	session := &entity.Session{Token: "tok-1", UserID: "user-1"}
	authUsecase.EXPECT().
		Authenticate(mock.Anything, "sealed").
		Return(session, nil)

	rec, nextRan, seen := invoke(t, mw.RequireAPI, "sealed")

	assert.True(t, nextRan)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "tok-1", seen.Token)
}

func TestSessionMiddleware_Optional_AnonymousPassesWithoutSession(t *testing.T) {
	mw, _ := newSessionMiddleware(t)

	rec, nextRan, seen := invoke(t, mw.Optional, "")

	assert.True(t, nextRan)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)
}
