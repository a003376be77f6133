package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	// CSRFKey is the echo context key holding the form token
	CSRFKey = "csrf"
	// CSRFField is the form field every POST form carries
	CSRFField = "_csrf"
)

// CSRF issues a token cookie on every request and rejects unsafe requests
// whose form token does not match it.
func CSRF(secure bool) echo.MiddlewareFunc {
	return echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:" + CSRFField,
		ContextKey:     CSRFKey,
		CookieName:     CSRFField,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// CSRFToken returns the token CSRF put in the context, if any.
func CSRFToken(c echo.Context) string {
	token, _ := c.Get(CSRFKey).(string)
	return token
}
