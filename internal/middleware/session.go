package middleware

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/internal/session"
)

const (
	// SessionKey is the echo context key holding *session.Data
	SessionKey = "session"
	// IsAuthenticatedKey is the echo context key holding a bool
	IsAuthenticatedKey = "is_authenticated"
)

// LoadSession reads the session of every request into the echo context. A
// missing session is not an error; it just leaves the request anonymous.
func LoadSession(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := mgr.Get(c)
			switch {
			case err == nil:
				c.Set(SessionKey, data)
				c.Set(IsAuthenticatedKey, data.Authenticated())
			case errors.Is(err, session.ErrNoSession):
				c.Set(IsAuthenticatedKey, false)
			default:
				slog.ErrorContext(c.Request().Context(), "failed to load session",
					"path", c.Request().URL.Path,
					"error", err,
				)
				c.Set(IsAuthenticatedKey, false)
			}

			return next(c)
		}
	}
}

// GetSession returns the session loaded by LoadSession, if any.
func GetSession(c echo.Context) (*session.Data, bool) {
	data, ok := c.Get(SessionKey).(*session.Data)
	return data, ok && data != nil
}

// IsAuthenticated checks if the request carries a session token
func IsAuthenticated(c echo.Context) bool {
	isAuth, _ := c.Get(IsAuthenticatedKey).(bool)
	return isAuth
}
