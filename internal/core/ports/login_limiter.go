package ports

import "context"

// LoginLimiter throttles repeated login attempts for a username. Allow
// consumes one attempt and reports whether the caller is still within the
// window budget; Reset clears the counter after a successful login.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}
