// Package session provides the cookie sealing for server-side sessions.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"panel/config"
	"panel/internal/domain/service"
)

// cookieService seals the opaque session token into a signed JWT so a
// tampered cookie never reaches the session store.
type cookieService struct {
	secret string
	ttl    time.Duration
}

// NewCookieService is the constructor for cookieService.
func NewCookieService(cfg *config.Config) (service.SessionCookieService, error) {
	if cfg.Session == nil || cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &cookieService{
		secret: cfg.Session.Secret,
		ttl:    cfg.Session.TTL,
	}, nil
}

// Seal wraps the session token in a signed claim set.
func (s *cookieService) Seal(sessionToken string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionToken,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session cookie")
	}

	return signed, nil
}

// Open validates the cookie signature and returns the embedded session
// token. The session store still decides whether the session itself lives.
func (s *cookieService) Open(cookieValue string) (string, error) {
	token, err := jwt.Parse(cookieValue, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return "", errors.Wrap(err, "invalid session cookie")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session cookie claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session cookie carries no session id")
	}

	return sid, nil
}
