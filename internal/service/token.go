package service

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"
)

// TokenIssuer signs HS256 bearer tokens whose subject is an account ID.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:  ttl,
	}
}

// Issue returns a signed token for accountID.
func (i *TokenIssuer) Issue(accountID string) (string, error) {
	claims := map[string]interface{}{"sub": accountID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, i.ttl)

	_, token, err := i.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// JWTAuth exposes the signer for request verification middleware.
func (i *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return i.auth
}
