//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"restaurant-reservation/internal/pkg/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider does, signed with the shared secret.
type JWTHelper struct {
	cfg config.AuthConfig
}

func NewJWTHelper(cfg config.AuthConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID string) string {
	t.Helper()
	return h.sign(t, userID, time.Now().Add(time.Hour))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID string) string {
	t.Helper()
	return h.sign(t, userID, time.Now().Add(-h.cfg.Leeway-time.Minute))
}

func (h *JWTHelper) sign(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := jwtlib.RegisteredClaims{
		Subject:   userID,
		Issuer:    h.cfg.Issuer,
		IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	require.NoError(t, err)
	return token
}
