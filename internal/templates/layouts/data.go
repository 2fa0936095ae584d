// data.go provides typed context helpers for passing layout data from
// handlers/middleware to templ components. Only simple types are stored so
// the layouts package never imports plugin types.
//
// Data flow: Middleware → Echo Context → LayoutInjector → Go Context → templ
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyIsAuthenticated ctxKey = "layout_is_authenticated"
	keyUserID          ctxKey = "layout_user_id"
	keyUserName        ctxKey = "layout_user_name"
	keyUserEmail       ctxKey = "layout_user_email"
	keyCSRFToken       ctxKey = "layout_csrf_token"
	keyToasts          ctxKey = "layout_toasts"
	keyActivePath      ctxKey = "layout_active_path"
	keyBackendMode     ctxKey = "layout_backend_mode"
)

// Toast is one notification shown at the top of the page. Kind is one of
// "success", "error", "warning" or "info".
type Toast struct {
	Kind string
	Text string
}

// --- Setters (called by the layout injector in app/routes.go) ---

// SetIsAuthenticated marks whether the current request has a valid session.
func SetIsAuthenticated(ctx context.Context, authed bool) context.Context {
	return context.WithValue(ctx, keyIsAuthenticated, authed)
}

// SetUserID stores the authenticated user's ID in context.
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyUserID, id)
}

// SetUserName stores the authenticated user's display name in context.
func SetUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyUserName, name)
}

// SetUserEmail stores the authenticated user's email in context.
func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, keyUserEmail, email)
}

// SetCSRFToken stores the CSRF token for forms.
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, keyCSRFToken, token)
}

// SetToasts stores the notifications to show on this render.
func SetToasts(ctx context.Context, toasts []Toast) context.Context {
	return context.WithValue(ctx, keyToasts, toasts)
}

// SetActivePath stores the current request path for nav highlighting.
func SetActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyActivePath, path)
}

// SetBackendMode stores "remote" or "stub" for the footer badge.
func SetBackendMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, keyBackendMode, mode)
}

// --- Getters (called by templ components) ---

// IsAuthenticated returns true if the current request has a valid session.
func IsAuthenticated(ctx context.Context) bool {
	authed, _ := ctx.Value(keyIsAuthenticated).(bool)
	return authed
}

// GetUserID returns the authenticated user's ID, or "".
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(keyUserID).(string)
	return id
}

// GetUserName returns the authenticated user's display name, or "".
func GetUserName(ctx context.Context) string {
	name, _ := ctx.Value(keyUserName).(string)
	return name
}

// GetUserEmail returns the authenticated user's email, or "".
func GetUserEmail(ctx context.Context) string {
	email, _ := ctx.Value(keyUserEmail).(string)
	return email
}

// GetCSRFToken returns the CSRF token, or "".
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(keyCSRFToken).(string)
	return token
}

// GetToasts returns the notifications for this render.
func GetToasts(ctx context.Context) []Toast {
	toasts, _ := ctx.Value(keyToasts).([]Toast)
	return toasts
}

// GetActivePath returns the current request path for nav highlighting.
func GetActivePath(ctx context.Context) string {
	path, _ := ctx.Value(keyActivePath).(string)
	return path
}

// GetBackendMode returns the active backend mode, or "".
func GetBackendMode(ctx context.Context) string {
	mode, _ := ctx.Value(keyBackendMode).(string)
	return mode
}
