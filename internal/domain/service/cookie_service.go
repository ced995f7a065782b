package service

// SessionCookieService signs and verifies the cookie that carries the
// opaque session token. The signature keeps forged or tampered cookies from
// ever reaching the session store; it does not replace the server-side
// session lookup.
type SessionCookieService interface {
	// Seal wraps the opaque session token in a signed cookie value.
	Seal(sessionToken string) (string, error)

	// Open verifies the cookie value and returns the embedded session
	// token. Invalid or expired cookie values return an error.
	Open(cookieValue string) (string, error)
}
