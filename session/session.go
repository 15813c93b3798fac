package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdeck/taskdeck/domain"
)

// DefaultExpiry is how long an issued bearer token stays valid.
const DefaultExpiry = 30 * 24 * time.Hour

// JWTStrategy issues and verifies stateless HS256 bearer tokens. Validity is
// purely a function of signature and expiry; nothing is stored server-side.
type JWTStrategy struct {
	secret []byte
	expiry time.Duration
}

// NewJWTStrategy fails on an empty secret rather than signing tokens with an
// empty key. A missing secret is a deployment error.
func NewJWTStrategy(secret string, expiry time.Duration) (*JWTStrategy, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret must not be empty")
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &JWTStrategy{secret: []byte(secret), expiry: expiry}, nil
}

// Issue signs a token carrying the user id as its subject.
func (s *JWTStrategy) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns the user id carried by a valid token. Malformed, tampered
// and expired tokens all collapse to domain.ErrInvalidToken so a caller
// cannot tell which check failed.
func (s *JWTStrategy) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
