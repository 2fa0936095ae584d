// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (Redis client, backend
// facade, metrics, Echo instance) and wires together all plugins.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/backend"
	"github.com/huabuyu/geoai/internal/config"
	"github.com/huabuyu/geoai/internal/flash"
	"github.com/huabuyu/geoai/internal/metrics"
	"github.com/huabuyu/geoai/internal/middleware"
	"github.com/huabuyu/geoai/internal/plugins/auth"
	"github.com/huabuyu/geoai/internal/templates/layouts"
	"github.com/huabuyu/geoai/internal/templates/pages"
	"github.com/huabuyu/geoai/internal/workspace"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// Redis is the optional Redis client backing workspaces and flash
	// messages. Nil selects the in-process stores.
	Redis *redis.Client

	// Backend is the identity/data provider facade chosen at startup.
	Backend backend.Client

	// Registry gathers the Prometheus metrics served on /metrics.
	Registry *prometheus.Registry

	// Metrics records auth outcomes, guard redirects and request counts.
	Metrics *metrics.Collector

	// Workspaces holds each user's edited projects and optimizations.
	Workspaces workspace.Store

	// Flashes holds toast messages between a redirect and the next page.
	Flashes flash.Store

	// Auth is the session service shared by the session middleware and the
	// auth handlers.
	Auth auth.AuthService

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, rdb *redis.Client, client backend.Client, reg *prometheus.Registry) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// Configure trusted reverse proxy IPs so c.RealIP() returns the actual
	// client IP instead of the proxy's IP.
	middleware.TrustedProxies(e, cfg.TrustedProxies)

	collector := metrics.NewCollector(reg)
	collector.SetBackendMode(string(client.Mode()))

	app := &App{
		Config:   cfg,
		Redis:    rdb,
		Backend:  client,
		Registry: reg,
		Metrics:  collector,
		Auth:     auth.NewAuthService(client, collector),
		Echo:     e,
	}

	if rdb != nil {
		app.Workspaces = workspace.NewRedisStore(rdb, cfg.Session.WorkspaceTTL)
		app.Flashes = flash.NewRedisStore(rdb, cfg.Session.FlashTTL)
	} else {
		app.Workspaces = workspace.NewMemoryStore(cfg.Session.WorkspaceTTL)
		app.Flashes = flash.NewMemoryStore(cfg.Session.FlashTTL)
	}

	// Register global middleware in order of execution.
	app.setupMiddleware()

	// Register the custom error handler that maps AppErrors to HTTP responses.
	e.HTTPErrorHandler = app.errorHandler

	// Every page picks up session, CSRF and toast data from here.
	middleware.LayoutInjector = app.injectLayout

	// Serve static files (CSS, images).
	e.Static("/static", "static")

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first, innermost (session) runs last.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery(func(c echo.Context) error {
		return middleware.Render(c, http.StatusInternalServerError, pages.Recovery())
	}))

	// Metrics sit outside the logger, which has already written the error
	// response by the time they read the status.
	a.Echo.Use(a.Metrics.Middleware())

	// Request logging -- log every request with method, path, status, latency.
	a.Echo.Use(middleware.RequestLogger())

	// Security headers -- CSP, X-Frame-Options, X-Content-Type-Options, etc.
	a.Echo.Use(middleware.SecurityHeaders())

	// CORS -- only the read-only JSON API is exposed cross-origin.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{a.Config.BaseURL, a.Config.Backend.ProductionOrigin},
		AllowCredentials: true,
	}))

	// CSRF -- double-submit cookie pattern on all state-changing requests.
	a.Echo.Use(middleware.CSRF())

	// Flash messages -- visitor id cookie and the toast queue.
	a.Echo.Use(flash.New(a.Flashes).Middleware())

	// Session -- resolve the auth token once per request.
	a.Echo.Use(auth.LoadSession(a.Auth, a.Config.Session.SecureCookies))
}

// injectLayout copies per-request data into the render context.
func (a *App) injectLayout(c echo.Context, ctx context.Context) context.Context {
	store := auth.GetStore(c)
	if user := store.User(); store.IsAuthenticated() && user != nil {
		ctx = layouts.SetIsAuthenticated(ctx, true)
		ctx = layouts.SetUserID(ctx, user.ID)
		ctx = layouts.SetUserName(ctx, user.DisplayName())
		ctx = layouts.SetUserEmail(ctx, user.Email)
	}

	ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
	ctx = layouts.SetActivePath(ctx, c.Request().URL.Path)
	ctx = layouts.SetBackendMode(ctx, string(a.Backend.Mode()))

	msgs := flash.Pop(c)
	if len(msgs) > 0 {
		toasts := make([]layouts.Toast, 0, len(msgs))
		for _, m := range msgs {
			toasts = append(toasts, layouts.Toast{Kind: m.Kind, Text: m.Text})
		}
		ctx = layouts.SetToasts(ctx, toasts)
	}
	return ctx
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) to appropriate HTTP responses, and renders error pages for
// browser requests or JSON for API requests.
//
// For HTMX requests that hit errors, we set HX-Retarget and HX-Reswap
// headers so the error page replaces the full body instead of being swapped
// into a partial target.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := defaultErrorMessage(code)

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message

		// Log internal errors with the underlying cause.
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
				slog.String("request_id", middleware.GetRequestID(c)),
			)
		}
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok && msg != http.StatusText(code) {
			message = msg
		} else {
			message = defaultErrorMessage(code)
		}
	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
			slog.String("request_id", middleware.GetRequestID(c)),
		)
	}

	// API requests always get JSON.
	if isAPIRequest(c) {
		_ = c.JSON(code, map[string]string{
			"error":   http.StatusText(code),
			"message": message,
		})
		return
	}

	if middleware.IsHTMX(c) {
		if code == http.StatusUnauthorized {
			c.Response().Header().Set("HX-Redirect", "/login")
			_ = c.NoContent(http.StatusNoContent)
			return
		}
		c.Response().Header().Set("HX-Retarget", "body")
		c.Response().Header().Set("HX-Reswap", "innerHTML")
	}

	if code == http.StatusUnauthorized {
		_ = c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := middleware.Render(c, code, pages.ErrorPage(code, message)); err != nil {
		slog.Error("rendering error page", slog.Any("error", err))
	}
}

// defaultErrorMessage returns a user-friendly message for common HTTP status codes
// when no specific message was provided by the error.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusUnauthorized:
		return "You need to log in to access this page."
	case http.StatusForbidden:
		return "You don't have permission to access this resource."
	case http.StatusNotFound:
		return "The page you're looking for doesn't exist or has been moved."
	case http.StatusMethodNotAllowed:
		return "This action is not allowed."
	case http.StatusUnprocessableEntity:
		return "The submitted data could not be processed."
	case http.StatusBadGateway:
		return "Our account service is not responding. Please try again shortly."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong on our end. Please try again."
	}
}

// isAPIRequest returns true if the request is targeting the API (JSON response expected).
func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting GEO AI server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
		slog.String("backend", string(a.Backend.Mode())),
	)
	return a.Echo.Start(addr)
}
