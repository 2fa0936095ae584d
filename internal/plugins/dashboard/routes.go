package dashboard

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the gated pages on a group that already carries
// auth.RequireSession.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/dashboard", h.Overview)

	g.GET("/projects", h.Projects)
	g.POST("/projects", h.CreateProject)
	g.POST("/projects/:id", h.UpdateProject)
	g.POST("/projects/:id/delete", h.DeleteProject)

	g.GET("/scan-results", h.ScanResults)
	g.GET("/reports", h.Reports)

	g.GET("/optimization", h.Optimization)
	g.POST("/optimization/generate", h.Generate)
}

// RegisterAPIRoutes sets up the gated JSON endpoints.
func RegisterAPIRoutes(g *echo.Group, h *Handler) {
	g.GET("/projects", h.APIProjects)
}
