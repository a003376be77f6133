package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/internal/middleware"
	"github.com/loganlanou/userdesk/internal/screens"
	"github.com/loganlanou/userdesk/internal/session"
	"github.com/loganlanou/userdesk/views/auth"
)

// AuthHandler handles the login screen and logout
type AuthHandler struct {
	sessions *session.Manager
	login    *screens.Login
	screens  *screens.Registry
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, login *screens.Login, registry *screens.Registry) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		login:    login,
		screens:  registry,
	}
}

// HandleLoginPage renders the empty login form
func (h *AuthHandler) HandleLoginPage(c echo.Context) error {
	if middleware.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/users")
	}
	return Render(c, auth.Login(pageFor(c, h.sessions), h.login.Idle("")))
}

// HandleLogin runs one login attempt
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	previous := sessionID(c)

	view := h.login.Submit(c.Request().Context(), email, password, func(_ context.Context, email, token string) error {
		_, err := h.sessions.Set(c, email, token)
		return err
	})

	if view.Status != screens.LoginAuthenticated {
		return Render(c, auth.Login(pageFor(c, h.sessions), view))
	}

	if previous != "" {
		h.screens.Discard(previous)
	}
	slog.Info("user logged in", "email", email)
	return c.Redirect(http.StatusSeeOther, "/users")
}

// HandleLogout clears the stored token and returns to the login screen
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	if id := sessionID(c); id != "" {
		h.screens.Discard(id)
	}

	if err := h.sessions.Clear(c); err != nil {
		slog.Error("failed to clear session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to log out")
	}

	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
