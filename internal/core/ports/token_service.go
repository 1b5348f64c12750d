package ports

// Claims is the identity payload embedded in a session token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService issues and verifies signed session tokens. Verify fails closed:
// a missing, malformed, expired, or tampered token always yields
// domain.ErrUnauthorized, never a decoding error.
type TokenService interface {
	Sign(claims Claims) (string, error)
	Verify(token string) (*Claims, error)
}
