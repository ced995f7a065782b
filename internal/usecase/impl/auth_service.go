// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"panel/config"
	deliverycontext "panel/internal/delivery/context"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/repository"
	"panel/internal/domain/service"
	"panel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	sessionRepo   repository.SessionRepository
	oauthService  service.DiscordOAuthService
	cookieService service.SessionCookieService
	sessionTTL    time.Duration
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	SessionRepo   repository.SessionRepository
	OAuthService  service.DiscordOAuthService
	CookieService service.SessionCookieService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	sessionTTL := 24 * time.Hour
	if params.Config != nil && params.Config.Session != nil && params.Config.Session.TTL > 0 {
		sessionTTL = params.Config.Session.TTL
	}

	return &authService{
		sessionRepo:   params.SessionRepo,
		oauthService:  params.OAuthService,
		cookieService: params.CookieService,
		sessionTTL:    sessionTTL,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LoginURL returns the provider authorize redirect with a fresh state nonce.
func (srv *authService) LoginURL() string {
	return srv.oauthService.BuildAuthorizationURL(uuid.New().String())
}

// HandleCallback exchanges the authorization code, loads the identity and
// establishes a session. The session row is committed before the output is
// returned, so an immediately following request can already authenticate.
// The code itself never reaches a log line.
func (srv *authService) HandleCallback(ctx context.Context, state, code string) (*usecase.CallbackOutput, error) {
	if code == "" {
		return nil, domainerrors.ErrAuthExchangeFailed.WrapMessage("callback carried no authorization code")
	}

	if !srv.oauthService.ValidateState(state) {
		srv.log(ctx).Warn("OAuth callback with invalid state")

		return nil, domainerrors.ErrAuthExchangeFailed.WrapMessage("invalid or expired state")
	}

	accessToken, err := srv.oauthService.ExchangeCode(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("OAuth code exchange failed", slog.Any("error", err))

		return nil, err
	}

	identity, err := srv.oauthService.FetchIdentity(ctx, accessToken)
	if err != nil {
		srv.log(ctx).Warn("Identity fetch failed after exchange", slog.Any("error", err))

		return nil, err
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}

	now := time.Now()
	session := &entity.Session{
		Token:       token,
		UserID:      identity.ID,
		Username:    identity.Username,
		Avatar:      identity.Avatar,
		AccessToken: accessToken,
		ExpiresAt:   now.Add(srv.sessionTTL),
		CreatedAt:   now,
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to persist session", slog.String("userID", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist session")
	}

	cookieValue, err := srv.cookieService.Seal(token)
	if err != nil {
		// The session row exists but the cookie cannot be issued; drop the
		// row so no orphan session lingers.
		_ = srv.sessionRepo.DeleteByToken(ctx, token)

		return nil, errors.Wrap(err, "failed to seal session cookie")
	}

	srv.log(ctx).Info("Session established", slog.String("userID", identity.ID))

	return &usecase.CallbackOutput{
		Session:     session,
		CookieValue: cookieValue,
	}, nil
}

// Authenticate resolves a sealed cookie to a live session.
func (srv *authService) Authenticate(ctx context.Context, cookieValue string) (*entity.Session, error) {
	if cookieValue == "" {
		return nil, domainerrors.ErrSessionRequired.WrapMessage("no session cookie")
	}

	token, err := srv.cookieService.Open(cookieValue)
	if err != nil {
		return nil, domainerrors.ErrSessionRequired.Wrap(err)
	}

	session, err := srv.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionRequired.WrapMessage("session expired or revoked")
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	return session, nil
}

// Logout destroys the session behind the cookie. A cookie that no longer
// opens or matches nothing is treated as already logged out.
func (srv *authService) Logout(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}

	token, err := srv.cookieService.Open(cookieValue)
	if err != nil {
		return nil
	}

	if err := srv.sessionRepo.DeleteByToken(ctx, token); err != nil {
		srv.log(ctx).Error("Failed to delete session on logout", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// SweepExpiredSessions removes expired session rows.
func (srv *authService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to sweep expired sessions")
	}

	if deleted > 0 {
		srv.log(ctx).Debug("Swept expired sessions", slog.Int64("deleted", deleted))
	}

	return deleted, nil
}

// generateSessionToken returns a 64-hex-char random token.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
