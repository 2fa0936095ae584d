package dashboard

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/backend"
	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/flash"
	"github.com/huabuyu/geoai/internal/middleware"
	"github.com/huabuyu/geoai/internal/plugins/auth"
	"github.com/huabuyu/geoai/internal/workspace"
)

// Handler serves the gated pages. Every route sits behind
// auth.RequireSession, so a signed-in user is always present.
type Handler struct {
	workspace WorkspaceService
	fixtures  fixtures.Provider
	client    backend.Client
}

// NewHandler creates the dashboard handler.
func NewHandler(ws WorkspaceService, fx fixtures.Provider, client backend.Client) *Handler {
	return &Handler{workspace: ws, fixtures: fx, client: client}
}

// Overview renders the dashboard (GET /dashboard?project=).
func (h *Handler) Overview(c echo.Context) error {
	user := auth.GetStore(c).User()
	ws, err := h.workspace.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	view := OverviewView{
		UserName:      user.DisplayName(),
		Projects:      ws.Projects,
		Metrics:       h.fixtures.DashboardMetrics(),
		Trend:         h.fixtures.VisibilityTrend(),
		Keywords:      h.fixtures.KeywordPerformance(),
		Optimizations: len(ws.Optimizations),
	}
	if p, ok := ws.FindProject(c.QueryParam("project")); ok {
		view.Active = &p
	} else if len(ws.Projects) > 0 {
		view.Active = &ws.Projects[0]
	}

	return middleware.Render(c, http.StatusOK, OverviewPage(view))
}

// --- Projects ---

// Projects lists the user's projects (GET /projects?edit=).
func (h *Handler) Projects(c echo.Context) error {
	ws, err := h.workspace.Get(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}

	view := ProjectsView{Projects: ws.Projects}
	if id := c.QueryParam("edit"); id != "" {
		p, ok := ws.FindProject(id)
		if !ok {
			return apperror.NewNotFound("project not found")
		}
		view.Editing = &p
	}
	return middleware.Render(c, http.StatusOK, ProjectsPage(view))
}

// CreateProject adds a project (POST /projects).
func (h *Handler) CreateProject(c echo.Context) error {
	var in workspace.ProjectInput
	if err := c.Bind(&in); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if _, err := h.workspace.CreateProject(c.Request().Context(), auth.GetUserID(c), in); err != nil {
		return h.formError(c, err, "/projects")
	}
	flash.Success(c, MsgProjectCreated)
	return middleware.Redirect(c, "/projects")
}

// UpdateProject edits a project (POST /projects/:id).
func (h *Handler) UpdateProject(c echo.Context) error {
	id := c.Param("id")
	var in workspace.ProjectInput
	if err := c.Bind(&in); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if _, err := h.workspace.UpdateProject(c.Request().Context(), auth.GetUserID(c), id, in); err != nil {
		return h.formError(c, err, "/projects?edit="+url.QueryEscape(id))
	}
	flash.Success(c, MsgProjectUpdated)
	return middleware.Redirect(c, "/projects")
}

// DeleteProject removes a project (POST /projects/:id/delete).
func (h *Handler) DeleteProject(c echo.Context) error {
	if err := h.workspace.DeleteProject(c.Request().Context(), auth.GetUserID(c), c.Param("id")); err != nil {
		return err
	}
	flash.Success(c, MsgProjectDeleted)
	return middleware.Redirect(c, "/projects")
}

// --- Scans and reports ---

// ScanResults shows one project's latest scan (GET /scan-results?project=).
func (h *Handler) ScanResults(c echo.Context) error {
	scans := h.fixtures.ScanResults()
	view := ScanView{Scans: scans, Selected: c.QueryParam("project")}
	if view.Selected == "" && len(scans) > 0 {
		view.Selected = scans[0].ProjectID
	}
	if scan, ok := fixtures.FindScan(h.fixtures, view.Selected); ok {
		view.Current = &scan
	}
	return middleware.Render(c, http.StatusOK, ScanResultsPage(view))
}

// Reports shows one report (GET /reports?report=).
func (h *Handler) Reports(c echo.Context) error {
	reports := h.fixtures.Reports()
	view := ReportsView{Reports: reports}

	if id := c.QueryParam("report"); id != "" {
		r, ok := fixtures.FindReport(h.fixtures, id)
		if !ok {
			return apperror.NewNotFound("report not found")
		}
		view.Current = &r
	} else if len(reports) > 0 {
		view.Current = &reports[0]
	}
	return middleware.Render(c, http.StatusOK, ReportsPage(view))
}

// --- Optimization ---

// Optimization lists generated content (GET /optimization?id=).
func (h *Handler) Optimization(c echo.Context) error {
	ws, err := h.workspace.Get(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}

	view := OptimizationView{
		Projects:      ws.Projects,
		Optimizations: ws.Optimizations,
		Types: []fixtures.OptimizationType{
			fixtures.OptimizationFAQ,
			fixtures.OptimizationPage,
			fixtures.OptimizationStructured,
		},
	}
	if o, ok := ws.FindOptimization(c.QueryParam("id")); ok {
		view.Current = &o
	} else if len(ws.Optimizations) > 0 {
		view.Current = &ws.Optimizations[0]
	}
	return middleware.Render(c, http.StatusOK, OptimizationPage(view))
}

// Generate creates optimization content (POST /optimization/generate) and
// selects it.
func (h *Handler) Generate(c echo.Context) error {
	var in workspace.GenerateInput
	if err := c.Bind(&in); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	opt, err := h.workspace.GenerateOptimization(c.Request().Context(), auth.GetUserID(c), in)
	if err != nil {
		return h.formError(c, err, "/optimization")
	}
	flash.Success(c, MsgGenerated)
	return middleware.Redirect(c, "/optimization?id="+url.QueryEscape(opt.ID))
}

// --- API ---

// APIProjects returns the projects table through the Backend Facade
// (GET /api/v1/projects).
func (h *Handler) APIProjects(c echo.Context) error {
	res, err := h.client.From("projects").Select(c.Request().Context())
	if err != nil {
		return apperror.NewUnavailable("projects are unavailable right now", err)
	}

	rows := make([]map[string]any, 0, len(res.Data))
	for _, r := range res.Data {
		rows = append(rows, r)
	}
	return c.JSON(http.StatusOK, ProjectsResponse{Data: rows, Source: string(h.client.Mode())})
}

// formError turns a validation failure into an error toast on the form's
// page. Anything else goes to the error handler.
func (h *Handler) formError(c echo.Context, err error, back string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity {
		flash.Error(c, appErr.Message)
		return middleware.Redirect(c, back)
	}
	return err
}
