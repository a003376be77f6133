package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/internal/avatar"
)

type AvatarHandler struct {
	renderer *avatar.Renderer
}

func NewAvatarHandler(renderer *avatar.Renderer) *AvatarHandler {
	return &AvatarHandler{renderer: renderer}
}

// HandleInitials serves /avatar/:name where name is "<initials>.png".
func (h *AvatarHandler) HandleInitials(c echo.Context) error {
	name := c.Param("name")
	if !strings.HasSuffix(name, ".png") {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	img, err := h.renderer.PNG(strings.TrimSuffix(name, ".png"))
	if err != nil {
		slog.Error("failed to render avatar", "name", name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render avatar")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", img)
}
