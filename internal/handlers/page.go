package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/internal/middleware"
	"github.com/loganlanou/userdesk/internal/session"
	"github.com/loganlanou/userdesk/views/layout"
)

// pageFor builds the layout chrome of the current request and pops flashes.
func pageFor(c echo.Context, sessions *session.Manager) layout.Page {
	page := layout.Page{
		IsAuthenticated: middleware.IsAuthenticated(c),
		CSRFToken:       middleware.CSRFToken(c),
	}
	if data, ok := middleware.GetSession(c); ok {
		page.Email = data.Email
	}
	page.Flashes = sessions.Flashes(c)
	return page
}

// sessionID returns the id of the guarded request's session.
func sessionID(c echo.Context) string {
	if data, ok := middleware.GetSession(c); ok {
		return data.ID
	}
	return ""
}
