package services

import (
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/auth"
)

const accessTokenType = "access"

// DefaultTokenTTL is how long a storefront session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and validates the HS256 session tokens.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secretKey: secret, ttl: ttl, now: time.Now}
}

// Generate signs a token carrying the user id.
func (s *TokenService) Generate(userID string) (string, error) {
	return auth.SignSession(s.secretKey, userID, accessTokenType, s.now(), s.ttl)
}

// Validate returns the user id carried by a valid, unexpired token.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	claims, err := auth.ParseSession(tokenStr, s.secretKey, accessTokenType)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
