package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// minSecretLen is the minimum secret size for HS256 (256 bits).
const minSecretLen = 32

// TokenCodec issues and verifies HMAC-SHA256 signed JWTs binding a token to
// a single username. The secret is fixed for the process lifetime; there is
// no key rotation.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec returns a codec signing with the given secret. The secret
// must carry at least 256 bits of entropy.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue creates a signed token for subject expiring ttl from now.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the decoded claims.
// Malformed tokens and signature mismatches report domain.ErrTokenInvalid;
// expiry reports domain.ErrTokenExpired. No other detail is exposed.
func (c *TokenCodec) Verify(token string) (*domain.Claims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
