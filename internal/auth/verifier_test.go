package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster-gdg/codementor/internal/core"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier_Verify(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	t.Run("Valid token resolves user and email", func(t *testing.T) {
		token := signToken(t, testSecret, Claims{
			Email: "student@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "uid-123",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		user, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, &core.User{ID: "uid-123", Email: "student@example.com"}, user)
	})

	t.Run("Expired token fails verification", func(t *testing.T) {
		token := signToken(t, testSecret, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "uid-123",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		_, err := v.Verify(token)
		assert.True(t, errors.Is(err, core.ErrVerification))
	})

	t.Run("Wrong signing secret fails verification", func(t *testing.T) {
		token := signToken(t, "other-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "uid-123"},
		})

		_, err := v.Verify(token)
		assert.True(t, errors.Is(err, core.ErrVerification))
	})

	t.Run("Token without subject is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, Claims{Email: "anon@example.com"})

		_, err := v.Verify(token)
		assert.True(t, errors.Is(err, core.ErrVerification))
	})

	t.Run("Garbage token fails verification", func(t *testing.T) {
		_, err := v.Verify("not.a.token")
		assert.True(t, errors.Is(err, core.ErrVerification))
	})
}
