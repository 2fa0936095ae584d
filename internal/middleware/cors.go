package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the JSON API.
	// Example: ["https://app.geoai.com", "http://localhost:8080"]
	AllowedOrigins []string

	// AllowCredentials lets the browser send the auth cookie cross-origin.
	AllowCredentials bool
}

// CORS returns middleware that sets Cross-Origin Resource Sharing headers on
// /api responses. HTML pages are same-origin and pass through untouched.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAll := false
	originSet := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[strings.TrimRight(o, "/")] = true
	}

	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS misconfiguration: wildcard origin with credentials; credentials disabled")
		cfg.AllowCredentials = false
	}

	allowMethods := strings.Join([]string{http.MethodGet, http.MethodOptions}, ", ")
	allowHeaders := strings.Join([]string{"Content-Type", "Authorization", "HX-Request"}, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			origin := req.Header.Get("Origin")

			if origin == "" || !strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}
			if !allowAll && !originSet[origin] {
				// The browser blocks the response without our headers.
				return next(c)
			}

			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if req.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				h.Set("Access-Control-Max-Age", "3600")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
