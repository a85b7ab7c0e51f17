package auth

import (
	"context"
	"fmt"
	"time"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ConnectionClaims bind one gateway connection to a user.
type ConnectionClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// ConnectionTokens issues and redeems single-use gateway connection tokens.
type ConnectionTokens struct {
	secret []byte
	ttl    time.Duration
	guard  ReplayGuard
	now    func() time.Time
}

func NewConnectionTokens(secret string, ttl time.Duration, guard ReplayGuard) *ConnectionTokens {
	return &ConnectionTokens{
		secret: []byte(secret),
		ttl:    ttl,
		guard:  guard,
		now:    time.Now,
	}
}

// Issue returns a token valid for one connection within the configured TTL.
func (c *ConnectionTokens) Issue(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", apperr.Validation("user id is required")
	}
	now := c.now()
	claims := ConnectionClaims{
		Purpose: config.ConnectionTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Audience:  jwt.ClaimStrings{config.ConnectionTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Redeem validates tokenString and marks it used. A second redemption of the
// same token fails, as does any expired, forged or foreign-purpose token.
func (c *ConnectionTokens) Redeem(ctx context.Context, tokenString string) (string, error) {
	claims := &ConnectionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(c.secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(config.ConnectionTokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return "", apperr.Auth("invalid or expired connection token")
	}
	if claims.Purpose != config.ConnectionTokenPurpose || claims.Subject == "" || claims.ID == "" {
		return "", apperr.Auth("not a connection token")
	}

	remaining := claims.ExpiresAt.Time.Sub(c.now())
	first, err := c.guard.Consume(ctx, claims.ID, remaining+time.Second)
	if err != nil {
		return "", fmt.Errorf("consume connection token: %w", err)
	}
	if !first {
		return "", apperr.Auth("connection token already used")
	}
	return claims.Subject, nil
}
