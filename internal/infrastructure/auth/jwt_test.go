package auth

import (
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:    "test-secret-key-at-least-32-chars!",
		Issuer:    "bonito-identity",
		Audience:  "bonito-backend",
		ClockSkew: time.Second,
	}
}

func TestVerifier_RoundTrip(t *testing.T) {
	cfg := testAuthConfig()
	token, err := NewSigner(cfg).Sign(shared.Actor{ID: "user-1", Email: "ana@bonitoviento.co", Name: "Ana Ruiz"}, time.Hour)
	require.NoError(t, err)

	actor, err := NewVerifier(cfg).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.ID)
	assert.Equal(t, "ana@bonitoviento.co", actor.Email)
	assert.Equal(t, "Ana Ruiz", actor.Name)
}

func TestVerifier_Rejects(t *testing.T) {
	cfg := testAuthConfig()
	actor := shared.Actor{ID: "user-1"}

	sign := func(cfg config.AuthConfig, ttl time.Duration) string {
		token, err := NewSigner(cfg).Sign(actor, ttl)
		require.NoError(t, err)
		return token
	}

	otherSecret := cfg
	otherSecret.Secret = "another-secret-key-at-least-32-chars"
	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	otherAudience := cfg
	otherAudience.Audience = "billing"

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "user-1",
		Issuer:   cfg.Issuer,
		Audience: jwt.ClaimStrings{cfg.Audience},
	}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", sign(otherSecret, time.Hour), ErrInvalidToken},
		{"wrong issuer", sign(otherIssuer, time.Hour), ErrInvalidToken},
		{"wrong audience", sign(otherAudience, time.Hour), ErrInvalidToken},
		{"expired", sign(cfg, -time.Hour), ErrExpiredToken},
		{"alg none", noneToken, ErrInvalidToken},
		{"no expiry", noExpiry, ErrInvalidToken},
		{"missing subject", func() string {
			token, err := NewSigner(cfg).Sign(shared.Actor{ID: ""}, time.Hour)
			require.NoError(t, err)
			return token
		}(), ErrMissingSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(cfg).Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifier_ClockSkew(t *testing.T) {
	cfg := testAuthConfig()
	cfg.ClockSkew = 10 * time.Second
	token, err := NewSigner(cfg).Sign(shared.Actor{ID: "user-1"}, time.Minute)
	require.NoError(t, err)

	v := NewVerifier(cfg)
	v.now = func() time.Time { return time.Now().Add(time.Minute + 5*time.Second) }
	_, err = v.Verify(token)
	assert.NoError(t, err, "within leeway")

	v.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
