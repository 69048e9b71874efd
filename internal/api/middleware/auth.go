package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/api/metrics"
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

// PrincipalKey is the echo context key the Auth middleware stores the
// resolved domain.Principal under.
const PrincipalKey = "principal"

const unauthorizedMsg = "invalid or expired token"

// Auth is the access guard: it extracts the bearer token, verifies it, and
// re-resolves the subject against the user store on every request. A missing
// header, a bad or expired token, a deleted principal, and a deactivated
// principal all produce the same 401 so the response leaks nothing about
// which check failed.
func Auth(codec ports.TokenCodec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject("missing_header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return reject("missing_header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return reject("bad_token")
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				return reject("unknown_principal")
			}
			if !user.Active {
				return reject("inactive_principal")
			}

			c.Set(PrincipalKey, domain.Principal{
				ID:       user.ID,
				Username: user.Username,
				Role:     user.Role,
			})

			return next(c)
		}
	}
}

func reject(reason string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMsg)
}
