package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoJWKS       = errors.New("no JWKS URL provided")
)

// StandardClaims represents the standard claims in a JWT token.
type StandardClaims struct {
	Sub    string `json:"sub"`
	UserId string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenValidator validates bearer tokens and extracts user identity.
type TokenValidator interface {
	// ValidateToken verifies the token and returns the user identity
	// (email when available, user_id or sub otherwise).
	ValidateToken(tokenString string) (string, error)
	// ExtractUserID returns the stable user ID used for Firestore paths.
	ExtractUserID(tokenString string) (string, error)
}
