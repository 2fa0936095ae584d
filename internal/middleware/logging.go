// Package middleware provides HTTP middleware for the GEO AI Echo server.
// Middleware is applied globally (all routes) or per-route group depending
// on the middleware type. See internal/app for registration.
package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestIDHeader carries the correlation id in and out.
const requestIDHeader = "X-Request-ID"

const contextKeyRequestID = "request_id"

// RequestLogger returns middleware that assigns a request id and logs every
// HTTP request with structured fields: method, path, status, latency,
// remote IP and request id.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			// Accept an upstream id only if it looks like one of ours.
			id := req.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			c.Set(contextKeyRequestID, id)
			res.Header().Set(requestIDHeader, id)

			err := next(c)
			if err != nil {
				// Let the error handler write the response now so the
				// logged status is the one the client sees.
				c.Error(err)
			}

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
				slog.String("request_id", id),
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}
			if IsHTMX(c) {
				attrs = append(attrs, slog.Bool("htmx", true))
			}

			level := slog.LevelInfo
			if res.Status >= 500 {
				level = slog.LevelError
			} else if res.Status >= 400 {
				level = slog.LevelWarn
			}

			slog.LogAttrs(req.Context(), level, "request", attrs...)
			return nil
		}
	}
}

// GetRequestID returns the id assigned by RequestLogger.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(contextKeyRequestID).(string)
	return id
}
