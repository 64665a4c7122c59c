package fhirauth

import (
	"context"
	"testing"
	"time"

	"gandall-service/internal/app/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-fhir-secret"

func newTestTokenProvider(secret string) *tokenProvider {
	return &tokenProvider{
		secret: secret,
		ttl:    5 * time.Minute,
		log:    zap.NewNop(),
	}
}

func parseTestToken(t *testing.T, signed string) jwt.MapClaims {
	t.Helper()

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, token.Method, "Token should be signed with an HMAC method")
		return []byte(testSecret), nil
	})
	require.NoError(t, err, "The signed token should parse with the shared secret")
	require.True(t, parsed.Valid, "The signed token should be valid")
	return claims
}

func TestTokenProvider_AccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Signs A Valid HS256 Token", func(t *testing.T) {
		provider := newTestTokenProvider(testSecret)

		signed, err := provider.AccessToken(ctx)

		require.NoError(t, err, "Error should be nil when a secret is configured")
		require.NotEmpty(t, signed, "A token should be issued")

		claims := parseTestToken(t, signed)
		assert.Equal(t, tokenSubject, claims["sub"], "The token subject should identify this service")

		expiry, ok := claims["exp"].(float64)
		require.True(t, ok, "The token should carry a numeric expiry")
		assert.Greater(t, int64(expiry), time.Now().Unix(), "The token should expire in the future")
	})

	t.Run("Token Is Reused Until Renewal", func(t *testing.T) {
		provider := newTestTokenProvider(testSecret)

		first, err := provider.AccessToken(ctx)
		require.NoError(t, err, "Error should be nil on the first call")

		second, err := provider.AccessToken(ctx)
		require.NoError(t, err, "Error should be nil on the second call")
		assert.Equal(t, first, second, "A fresh token should be reused instead of re-signed")
	})

	t.Run("Near Expiry Forces A Re-Sign", func(t *testing.T) {
		provider := newTestTokenProvider(testSecret)
		provider.token = "stale-token"
		provider.expiresAt = time.Now().UTC().Add(10 * time.Second)

		signed, err := provider.AccessToken(ctx)

		require.NoError(t, err, "Error should be nil when re-signing")
		assert.NotEqual(t, "stale-token", signed, "A token inside the renewal margin should be replaced")
		parseTestToken(t, signed)
	})

	t.Run("Empty Secret Disables Signing", func(t *testing.T) {
		provider := newTestTokenProvider("")

		signed, err := provider.AccessToken(ctx)

		require.NoError(t, err, "An unconfigured secret should not be an error")
		assert.Empty(t, signed, "No token should be issued without a secret")
	})
}

func TestNewTokenProvider_TTLFallback(t *testing.T) {
	provider := NewTokenProvider(&config.InternalConfig{
		FHIR: config.AppFHIR{JWTSecret: testSecret, JWTExpiredTimeInMinutes: 0},
	}, zap.NewNop())

	signed, err := provider.AccessToken(context.Background())

	require.NoError(t, err, "Error should be nil with the default TTL")
	assert.NotEmpty(t, signed, "A token should be issued with the default TTL")
}
