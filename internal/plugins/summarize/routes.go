package summarize

import (
	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/plugins/auth"
)

// RegisterRoutes mounts the summarize endpoint on the todo group
// (POST /api/v1/todo/summarize). Owner-scoped, so it runs behind
// RequireAuth.
func RegisterRoutes(g *echo.Group, h *Handler, authSvc auth.AuthService) {
	g.POST("/summarize", h.Summarize, auth.RequireAuth(authSvc))
}
