package marketing

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the public marketing pages.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.Home)
	e.GET("/contact", h.ContactForm)
	e.POST("/contact", h.Contact)
	e.GET("/demo", h.DemoForm)
	e.POST("/demo", h.ScheduleDemo)
}
