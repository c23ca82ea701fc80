package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/plugins/auth"
	"github.com/tasknest/tasknest/internal/plugins/summarize"
	"github.com/tasknest/tasknest/internal/plugins/todos"
)

// RegisterRoutes sets up all application routes. It constructs each plugin's
// repository/service/handler stack and delegates to the plugin's route
// registration function.
//
// This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Public Routes (no auth required) ---

	// Landing route so a bare GET / confirms the service is up.
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "server is running...")
	})

	// Health check endpoint for container orchestration. Reports unhealthy
	// when either backing store stops answering pings.
	e.GET("/healthz", a.healthz)

	// --- Plugin Stacks ---

	authRepo := auth.NewUserRepository(a.DB)
	authSvc := auth.NewAuthService(authRepo,
		[]byte(a.Config.Auth.JWTSecret), a.Config.Auth.TokenTTL)
	authHandler := auth.NewHandler(authSvc,
		int(a.Config.Auth.TokenTTL.Seconds()), !a.Config.IsDevelopment())

	todoRepo := todos.NewTodoRepository(a.DB)
	todoSvc := todos.NewTodoService(todoRepo)
	todoHandler := todos.NewHandler(todoSvc)

	generator := summarize.NewGeminiClient(
		a.Config.Summarizer.GeminiAPIKey,
		a.Config.Summarizer.GeminiModel,
		a.Config.Summarizer.Timeout,
	)
	notifier := summarize.NewSlackWebhook(
		a.Config.Summarizer.SlackWebhookURL,
		a.Config.Summarizer.Timeout,
	)
	summarySvc := summarize.NewSummaryService(todoSvc, generator, notifier)
	summaryHandler := summarize.NewHandler(summarySvc)

	// --- Plugin Routes ---

	api := e.Group("/api/v1")

	auth.RegisterRoutes(api.Group("/auth"), authHandler, authSvc, a.Redis)

	todoGroup := api.Group("/todo")
	todos.RegisterRoutes(todoGroup, todoHandler, authSvc)
	summarize.RegisterRoutes(todoGroup, summaryHandler, authSvc)
}

// healthz pings MariaDB and Redis with a short deadline and reports status
// per dependency.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}

	if err := a.DB.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, checks)
}
