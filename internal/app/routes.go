package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/metrics"
	"github.com/huabuyu/geoai/internal/middleware"
	"github.com/huabuyu/geoai/internal/plugins/auth"
	"github.com/huabuyu/geoai/internal/plugins/dashboard"
	"github.com/huabuyu/geoai/internal/plugins/marketing"
	"github.com/huabuyu/geoai/internal/templates/pages"
	"github.com/huabuyu/geoai/internal/workspace"
)

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo
	fx := fixtures.NewStatic()

	// --- Infrastructure ---

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", a.healthz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(a.Registry)))

	// --- Public Routes (no auth required) ---

	marketing.RegisterRoutes(e, marketing.NewHandler(marketing.NewInquiryService(nil), fx))

	authHandler := auth.NewHandler(a.Auth, auth.HandlerConfig{
		ProductionOrigin: a.Config.Backend.ProductionOrigin,
		DelayedDomains:   a.Config.Backend.DelayedDomains,
	})
	auth.RegisterRoutes(e, authHandler)

	// --- Gated Routes ---
	// Every route below requires a signed-in user.
	dashHandler := dashboard.NewHandler(workspace.NewService(a.Workspaces, fx), fx, a.Backend)
	gated := e.Group("", auth.RequireSession(a.Metrics))
	dashboard.RegisterRoutes(gated, dashHandler)

	// --- API Routes ---
	api := e.Group("/api/v1")
	auth.RegisterAPIRoutes(api, authHandler)
	dashboard.RegisterAPIRoutes(api.Group("", auth.RequireSession(a.Metrics)), dashHandler)

	// Anything else is the "Empty" page.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return middleware.Render(c, http.StatusNotFound, pages.NotFound())
	})
}

// healthz reports liveness plus the Redis connection when one is configured.
func (a *App) healthz(c echo.Context) error {
	status := map[string]string{"status": "ok", "backend": string(a.Backend.Mode())}
	if a.Redis != nil {
		if err := a.Redis.Ping(c.Request().Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["redis"] = "ok"
	}
	return c.JSON(http.StatusOK, status)
}
