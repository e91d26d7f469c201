package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lestrrat-go/jwx/jwk"
)

// JWTTokenValidator validates JWT bearer tokens against a JWKS endpoint.
// Used for self-hosted deployments that do not run Firebase Auth.
type JWTTokenValidator struct {
	keySet  jwk.Set
	jwksURL string
	devMode bool
}

// NewJWTTokenValidator creates a validator for the given JWKS URL. With an
// empty URL the validator runs in development mode and parses tokens without
// signature verification.
func NewJWTTokenValidator(jwksURL string) (*JWTTokenValidator, error) {
	if jwksURL == "" {
		return &JWTTokenValidator{devMode: true}, nil
	}

	keySet, err := jwk.Fetch(context.Background(), jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", jwksURL, err)
	}

	return &JWTTokenValidator{
		keySet:  keySet,
		jwksURL: jwksURL,
	}, nil
}

// RefreshKeys refreshes the JWKS from the URL.
func (v *JWTTokenValidator) RefreshKeys() error {
	if v.jwksURL == "" {
		return ErrNoJWKS
	}

	keySet, err := jwk.Fetch(context.Background(), v.jwksURL)
	if err != nil {
		return fmt.Errorf("failed to refresh JWKS from %s: %w", v.jwksURL, err)
	}

	v.keySet = keySet
	return nil
}

// parseClaims parses and, outside development mode, verifies the token and
// returns its claims.
func (v *JWTTokenValidator) parseClaims(tokenString string) (*StandardClaims, error) {
	if v.devMode {
		token, _, err := new(jwt.Parser).ParseUnverified(tokenString, &StandardClaims{})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		claims, ok := token.Claims.(*StandardClaims)
		if !ok {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	if v.keySet == nil {
		return nil, ErrNoJWKS
	}

	// Parse the header without validation to learn which key signed it.
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, &StandardClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse token header: %v", ErrInvalidToken, err)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: token header missing kid", ErrInvalidToken)
	}

	key, found := v.keySet.LookupKeyID(kid)
	if !found {
		// The signing key may have rotated since startup.
		if err := v.RefreshKeys(); err != nil {
			return nil, fmt.Errorf("%w: key with ID %s not found and failed to refresh keys: %v", ErrInvalidToken, kid, err)
		}

		key, found = v.keySet.LookupKeyID(kid)
		if !found {
			var availableKeys []string
			for i := 0; i < v.keySet.Len(); i++ {
				k, _ := v.keySet.Get(i)
				availableKeys = append(availableKeys, k.KeyID())
			}
			return nil, fmt.Errorf("%w: key with ID %s not found, available keys: %v", ErrInvalidToken, kid, availableKeys)
		}
	}

	var rawKey interface{}
	if err := key.Raw(&rawKey); err != nil {
		return nil, fmt.Errorf("%w: failed to get raw key: %v", ErrInvalidToken, err)
	}

	validatedToken, err := jwt.ParseWithClaims(
		tokenString,
		&StandardClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return rawKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := validatedToken.Claims.(*StandardClaims)
	if !ok || !validatedToken.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyExpiresAt(time.Now(), true) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

// ValidateToken validates a JWT token and returns the user identity
// (email when available, user_id or sub otherwise).
func (v *JWTTokenValidator) ValidateToken(tokenString string) (string, error) {
	claims, err := v.parseClaims(tokenString)
	if err != nil {
		return "", err
	}

	if claims.Email != "" {
		return claims.Email, nil
	}
	if claims.UserId != "" {
		return claims.UserId, nil
	}
	if claims.Sub != "" {
		return claims.Sub, nil
	}

	return "", fmt.Errorf("%w: no email, user_id, or subject (sub) found in token claims", ErrInvalidToken)
}

// ExtractUserID extracts the stable user ID (prioritizes sub over email).
// This is the ID used for Firestore document paths.
func (v *JWTTokenValidator) ExtractUserID(tokenString string) (string, error) {
	claims, err := v.parseClaims(tokenString)
	if err != nil {
		return "", err
	}

	if claims.Sub != "" {
		return claims.Sub, nil
	}
	if claims.UserId != "" {
		return claims.UserId, nil
	}
	if claims.Email != "" {
		return claims.Email, nil
	}

	return "", fmt.Errorf("%w: no sub, user_id, or email found in token claims", ErrInvalidToken)
}
