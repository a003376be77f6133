package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// RequireSession guards protected routes. It is a pure presence check on the
// token loaded by LoadSession: no upstream call, no decoding, no expiry.
// Without a token the wrapped handler never runs.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if data, ok := GetSession(c); ok && data.Authenticated() {
				return next(c)
			}

			slog.DebugContext(c.Request().Context(), "no session token, redirecting to login",
				"path", c.Request().URL.Path,
			)
			return c.Redirect(http.StatusFound, LoginPath)
		}
	}
}
