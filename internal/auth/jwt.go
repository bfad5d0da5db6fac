// Package auth validates caller credentials for the analyze endpoint. It
// supports HMAC-signed bearer tokens and bcrypt-hashed API keys; which one is
// enforced is a deployment decision.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	dErrors "kyc-gateway/pkg/domain-errors"
)

// Claims represents the JWT claims expected on access tokens.
type Claims struct {
	CallerID string `json:"caller_id"`
	jwt.RegisteredClaims
}

// JWTValidator validates HMAC-signed access tokens.
type JWTValidator struct {
	signingKey []byte
}

// NewJWTValidator builds a validator for tokens signed with the given key.
func NewJWTValidator(signingKey string) *JWTValidator {
	return &JWTValidator{signingKey: []byte(signingKey)}
}

// ValidateToken parses and verifies a token, returning its claims.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
