package todos

import (
	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/plugins/auth"
)

// RegisterRoutes sets up all todo routes on the given group (mounted at
// /api/v1/todo). Every route is owner-scoped and runs behind RequireAuth.
func RegisterRoutes(g *echo.Group, h *Handler, authSvc auth.AuthService) {
	authed := g.Group("", auth.RequireAuth(authSvc))

	authed.GET("/todos", h.List)
	authed.POST("/todos", h.Create)
	authed.PUT("/todo", h.Update)
	authed.DELETE("/todos/:id", h.Delete)
}
