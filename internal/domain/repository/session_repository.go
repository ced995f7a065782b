// Package repository defines the persistence interfaces the use cases
// depend on, keeping them independent of any specific database driver.
package repository

import (
	"context"

	"panel/internal/domain/entity"
	"panel/internal/errors"
)

// Sentinel errors shared by the repository implementations.
var (
	// ErrSessionNotFound covers both absent and expired sessions; the
	// caller cannot tell the difference and must not need to.
	ErrSessionNotFound = errors.New("session not found")

	ErrEntitlementNotFound = errors.New("entitlement not found")

	ErrSettingsNotFound = errors.New("guild settings not found")

	// ErrDuplicateCapture signals that a payment capture ID was already
	// recorded; the confirmation must short-circuit without extending.
	ErrDuplicateCapture = errors.New("payment capture already recorded")
)

// SessionRepository stores authenticated dashboard sessions. The store
// enforces expiry: FindByToken never returns an expired session.
type SessionRepository interface {
	// Create persists a new session. It must be durably committed before
	// the caller responds to the client.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken returns ErrSessionNotFound for absent or expired tokens.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// DeleteByToken removes a session; deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes all sessions past their expiry.
	DeleteExpired(ctx context.Context) (int64, error)
}
