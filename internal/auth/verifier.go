// Package auth implements identity-token verification. Tokens are issued by
// the external login service; this package only checks the signature and
// expiry and extracts the (user id, email) pair.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// Claims are the token claims the assistant cares about.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256-signed identity tokens.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the user it identifies.
// Any failure, including expiry or an unexpected signing method, maps to
// core.ErrVerification.
func (v *JWTVerifier) Verify(token string) (*core.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrVerification, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", core.ErrVerification)
	}

	return &core.User{ID: claims.Subject, Email: claims.Email}, nil
}
