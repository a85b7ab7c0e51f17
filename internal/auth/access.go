// Package auth validates the session access tokens presented on REST calls and
// issues/validates the short-lived connection tokens used by the realtime gateway.
// The two token kinds use different secrets so one can never stand in for the other.
package auth

import (
	"time"

	"jobboard/chat/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

const accessIssuer = "jobboard-auth"

// AccessClaims are the claims of a session access token. Subject is the user id.
type AccessClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// AccessTokens validates session tokens minted by the identity service.
type AccessTokens struct {
	secret []byte
	now    func() time.Time
}

func NewAccessTokens(secret string) *AccessTokens {
	return &AccessTokens{secret: []byte(secret), now: time.Now}
}

// Issue mints an access token. Production tokens come from the identity
// service; this is used by the admin CLI and tests.
func (a *AccessTokens) Issue(userID, username string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    accessIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Validate returns the user id bound to tokenString.
func (a *AccessTokens) Validate(tokenString string) (string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(a.secret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(accessIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return "", apperr.Auth("invalid or expired access token")
	}
	if claims.Subject == "" {
		return "", apperr.Auth("access token has no subject")
	}
	return claims.Subject, nil
}

func hmacKey(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}
}
