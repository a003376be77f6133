package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/internal/screens"
	"github.com/loganlanou/userdesk/internal/session"
	"github.com/loganlanou/userdesk/views/users"
)

// UsersHandler serves the user list and the edit screen.
type UsersHandler struct {
	sessions *session.Manager
	screens  *screens.Registry
	edit     *screens.EditUser
}

func NewUsersHandler(sessions *session.Manager, registry *screens.Registry, edit *screens.EditUser) *UsersHandler {
	return &UsersHandler{
		sessions: sessions,
		screens:  registry,
		edit:     edit,
	}
}

// HandleList mounts the list screen on the requested page. Every visit
// fetches the page fresh.
func (h *UsersHandler) HandleList(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	list := h.screens.UserList(sessionID(c))
	view := list.Load(c.Request().Context(), page)

	return Render(c, users.List(pageFor(c, h.sessions), view))
}

// HandleDelete deletes one user and renders the list from memory.
func (h *UsersHandler) HandleDelete(c echo.Context) error {
	id, ok := screens.ParseID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	ctx := c.Request().Context()
	list := h.screens.UserList(sessionID(c))
	if !list.Mounted() {
		list.Load(ctx, 1)
	}
	view := list.Delete(ctx, id)

	return Render(c, users.List(pageFor(c, h.sessions), view))
}

// HandleEditPage mounts the edit screen. Leaving the list unmounts it.
func (h *UsersHandler) HandleEditPage(c echo.Context) error {
	h.screens.Discard(sessionID(c))

	view := h.edit.Mount(c.Request().Context(), c.Param("id"))
	return Render(c, users.Edit(pageFor(c, h.sessions), view))
}

// HandleEditSubmit saves the form. Success goes back to the list; failure
// re-renders the form with what was submitted.
func (h *UsersHandler) HandleEditSubmit(c echo.Context) error {
	form := screens.EditForm{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
		Avatar:    c.FormValue("avatar"),
	}

	view := h.edit.Save(c.Request().Context(), c.Param("id"), form)
	if view.Status != screens.EditSaved {
		return Render(c, users.Edit(pageFor(c, h.sessions), view))
	}

	if err := h.sessions.AddFlash(c, screens.MsgUserUpdated); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}
