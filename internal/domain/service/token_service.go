package service

import "github.com/golang-jwt/jwt/v5"

// TokenService validates access tokens issued by the external identity
// provider. Token issuance, sessions and refresh are the provider's concern.
type TokenService interface {
	// ValidateToken parses and verifies a signed token string.
	ValidateToken(tokenString, secretKey string) (*jwt.Token, error)
}
