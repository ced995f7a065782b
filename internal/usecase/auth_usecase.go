// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"panel/internal/domain/entity"
)

// --- Output DTOs ---

// CallbackOutput returns the established session and the sealed cookie value
// after a successful OAuth callback.
type CallbackOutput struct {
	Session     *entity.Session
	CookieValue string
}

// AuthUsecase defines the interface for login, logout and session resolution.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// LoginURL returns the provider authorize redirect carrying a fresh
	// state nonce.
	LoginURL() string

	// HandleCallback exchanges the authorization code and establishes a
	// session. No session exists if any step fails. The code must never be
	// logged.
	HandleCallback(ctx context.Context, state, code string) (*CallbackOutput, error)

	// Authenticate resolves a sealed cookie value to a live session,
	// returning ErrSessionRequired for missing, tampered or expired ones.
	Authenticate(ctx context.Context, cookieValue string) (*entity.Session, error)

	// Logout destroys the session behind the cookie. Unknown cookies are
	// not an error.
	Logout(ctx context.Context, cookieValue string) error

	// SweepExpiredSessions removes expired session rows, returning how many
	// were deleted.
	SweepExpiredSessions(ctx context.Context) (int64, error)
}
