package ports

import (
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// TokenCodec issues and verifies signed, time-bound bearer tokens.
// Verification failures are reported as domain.ErrTokenInvalid (malformed
// encoding or signature mismatch) or domain.ErrTokenExpired.
type TokenCodec interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(token string) (*domain.Claims, error)
}
