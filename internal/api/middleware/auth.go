package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/tasktracker/internal/api/metrics"
	"github.com/taskhive/tasktracker/pkg/token"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// Auth verifies the bearer token on every request and injects the caller's
// identity into the echo context. Any verification failure — missing
// header, bad signature, wrong issuer or audience, expiry, malformed
// subject — is a 401; there is no partial trust.
func Auth(tokens *token.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, email, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, userID)
			c.Set(CtxEmail, email)

			return next(c)
		}
	}
}
