package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the public auth pages. The session middleware is
// registered globally in app; the guard is exported for the gated group.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/signup", h.SignupForm)
	e.POST("/signup", h.Signup)
	e.GET("/verify-email", h.VerifyEmail)
	e.POST("/verify-email/resend", h.Resend)
	e.POST("/logout", h.Logout)
}

// RegisterAPIRoutes sets up the JSON session endpoint on the /api/v1 group.
func RegisterAPIRoutes(api *echo.Group, h *Handler) {
	api.GET("/session", h.Session)
}
