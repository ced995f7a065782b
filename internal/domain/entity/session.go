// Package entity contains the core business objects of the panel,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Session represents an authenticated dashboard login. It is keyed by an
// opaque token held by the client inside a signed cookie; everything else
// lives server-side so a cookie alone never exposes the delegated token.
type Session struct {
	Token       string    // Opaque, cryptographically random session key.
	UserID      string    // Discord user ID (snowflake) of the authenticated admin.
	Username    string    // Display name captured at login time.
	Avatar      string    // Avatar hash from the identity provider, may be empty.
	AccessToken string    // User-delegated OAuth token, used for read-only guild listing.
	ExpiresAt   time.Time // Absolute expiry; the store treats expired rows as absent.
	CreatedAt   time.Time
}

// Expired reports whether the session is past its absolute window.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
