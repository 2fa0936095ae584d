package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/huabuyu/geoai/internal/metrics"
	"github.com/huabuyu/geoai/internal/middleware"
	"github.com/huabuyu/geoai/internal/session"
)

const contextKeyStore = "auth_session_store"

// skipSessionPrefixes never need a user, so no provider round trip is spent
// on them.
var skipSessionPrefixes = []string{"/static/", "/healthz", "/metrics"}

// LoadSession returns global middleware that creates the request's Session
// Store and rehydrates it from the authToken cookie. The token is the only
// authority: a token the backend does not recognize is removed, and a valid
// one re-derives the user on every request.
//
// When the backend cannot be reached the request proceeds unauthenticated
// but the cookie is kept, so a transient outage does not sign anyone out.
func LoadSession(service AuthService, secureCookies bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range skipSessionPrefixes {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			tokens := newCookieTokens(c, secureCookies || middleware.IsSecureRequest(c))
			store := session.New(tokens)
			c.Set(contextKeyStore, store)

			token := tokens.Token()
			if token == "" {
				return next(c)
			}

			done := store.Begin()
			user, err := service.CurrentUser(c.Request().Context(), token)
			done()

			switch {
			case err != nil:
				slog.Warn("session lookup failed",
					slog.Any("error", err),
					slog.String("path", path),
				)
			case user == nil:
				store.Logout()
			default:
				if err := store.SetAuthenticated(user); err != nil {
					return err
				}
			}

			return next(c)
		}
	}
}

// RequireSession returns middleware for the gated route group. Signed-in
// requests pass through; everyone else is sent to /login (or gets 401 JSON
// on /api). There are no roles.
func RequireSession(rec metrics.Recorder) echo.MiddlewareFunc {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetStore(c).IsAuthenticated() {
				return next(c)
			}
			rec.RecordGuardRedirect()
			return handleUnauthenticated(c)
		}
	}
}

// handleUnauthenticated returns the appropriate response for unauthenticated
// requests: redirect for browsers, 401 JSON for API clients.
func handleUnauthenticated(c echo.Context) error {
	if isAPIRequest(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}

	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", loginPath)
		return c.NoContent(http.StatusNoContent)
	}

	return c.Redirect(http.StatusSeeOther, loginPath)
}

// --- Exported getters for other plugins ---

// GetStore returns the request's Session Store. Without LoadSession in the
// chain an empty, unauthenticated store is returned and cached.
func GetStore(c echo.Context) *session.Store {
	if store, ok := c.Get(contextKeyStore).(*session.Store); ok {
		return store
	}
	store := session.New(nil)
	c.Set(contextKeyStore, store)
	return store
}

// GetUserID returns the signed-in user's ID, or "".
func GetUserID(c echo.Context) string {
	if u := GetStore(c).User(); u != nil {
		return u.ID
	}
	return ""
}

// isAPIRequest returns true if the request targets the /api/ path.
func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
