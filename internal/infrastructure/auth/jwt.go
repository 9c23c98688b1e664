// Package auth verifies identity-provider bearer tokens and resolves the actor
// attached to agenda events and fulfillments.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing sub claim")
)

// Claims are the identity provider claims the backend relies on
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Actor converts the claims into the domain actor
func (c *Claims) Actor() shared.Actor {
	return shared.Actor{
		ID:    c.Subject,
		Email: strings.TrimSpace(c.Email),
		Name:  strings.TrimSpace(c.Name),
	}
}

// Verifier validates HS256 bearer tokens issued by the identity provider
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	skew     time.Duration
	now      func() time.Time
}

// NewVerifier creates a verifier from the auth configuration
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		skew:     cfg.ClockSkew,
		now:      time.Now,
	}
}

// Verify parses and validates a token and returns the actor it identifies
func (v *Verifier) Verify(tokenString string) (shared.Actor, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.skew),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return shared.Actor{}, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return shared.Actor{}, ErrTokenNotYetValid
		default:
			return shared.Actor{}, ErrInvalidToken
		}
	}

	actor := claims.Actor()
	if actor.IsZero() {
		return shared.Actor{}, ErrMissingSubject
	}
	return actor, nil
}

// Signer issues tokens with the same secret a Verifier checks. The identity
// provider owns issuance in production; this is for local runs and tests.
type Signer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewSigner creates a signer from the auth configuration
func NewSigner(cfg config.AuthConfig) *Signer {
	return &Signer{secret: []byte(cfg.Secret), issuer: cfg.Issuer, audience: cfg.Audience}
}

// Sign returns a token for actor valid for ttl from now
func (s *Signer) Sign(actor shared.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: actor.Email,
		Name:  actor.Name,
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
