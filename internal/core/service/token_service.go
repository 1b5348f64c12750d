package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventhub/event-server/internal/core/domain"
	"github.com/eventhub/event-server/internal/core/ports"
)

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewTokenService(secret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Sign embeds the claims and an expiry into a signed token.
func (s *TokenService) Sign(claims ports.Claims) (string, error) {
	mc := jwt.MapClaims{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token. Any failure — missing, malformed,
// expired, or a signature mismatch — yields domain.ErrUnauthorized.
func (s *TokenService) Verify(token string) (*ports.Claims, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthorized
	}

	userID, _ := mc["user_id"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if userID == "" || role == "" {
		return nil, domain.ErrUnauthorized
	}

	return &ports.Claims{UserID: userID, Email: email, Role: role}, nil
}
