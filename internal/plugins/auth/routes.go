package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tasknest/tasknest/internal/middleware"
)

// RegisterRoutes sets up all auth routes on the given group (mounted at
// /api/v1/auth). Signup and signin are public; me requires a session.
//
// POST endpoints are rate-limited to slow brute-force and credential
// stuffing: 10 attempts per IP per minute for signin, 5 for signup.
func RegisterRoutes(g *echo.Group, h *Handler, svc AuthService, rdb *redis.Client) {
	g.POST("/signup", h.Signup, middleware.RateLimit(rdb, "signup", 5, time.Minute))
	g.POST("/signin", h.Signin, middleware.RateLimit(rdb, "signin", 10, time.Minute))

	// Signout only clears the cookie; it works with or without a valid
	// session, so it is not gated.
	g.GET("/signout", h.Signout)

	g.GET("/me", h.Me, RequireAuth(svc))
}
