// Package dashboard serves the gated product pages: the overview, project
// management, scan results, reports and content optimization. Product data
// comes from the fixtures; user edits live in the workspace.
package dashboard

import (
	"context"

	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/workspace"
)

// Messages shown after successful actions.
const (
	MsgProjectCreated = "Project created successfully"
	MsgProjectUpdated = "Project updated successfully"
	MsgProjectDeleted = "Project deleted successfully"
	MsgGenerated      = "Optimization content generated successfully"
)

// WorkspaceService is the subset of workspace.Service the handlers use.
type WorkspaceService interface {
	Get(ctx context.Context, userID string) (*workspace.Workspace, error)
	CreateProject(ctx context.Context, userID string, in workspace.ProjectInput) (*fixtures.Project, error)
	UpdateProject(ctx context.Context, userID, projectID string, in workspace.ProjectInput) (*fixtures.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	GenerateOptimization(ctx context.Context, userID string, in workspace.GenerateInput) (*fixtures.Optimization, error)
}

// --- View models ---

// OverviewView is the data behind GET /dashboard.
type OverviewView struct {
	UserName      string
	Projects      []fixtures.Project
	Active        *fixtures.Project
	Metrics       []fixtures.Metric
	Trend         []fixtures.TrendPoint
	Keywords      []fixtures.KeywordPerformance
	Optimizations int
}

// ProjectsView is the data behind GET /projects. Editing is set when the
// edit form for one project is open.
type ProjectsView struct {
	Projects []fixtures.Project
	Editing  *fixtures.Project
}

// ScanView is the data behind GET /scan-results.
type ScanView struct {
	Scans    []fixtures.ScanResult
	Selected string
	Current  *fixtures.ScanResult
}

// ReportsView is the data behind GET /reports.
type ReportsView struct {
	Reports []fixtures.Report
	Current *fixtures.Report
}

// OptimizationView is the data behind GET /optimization.
type OptimizationView struct {
	Projects      []fixtures.Project
	Optimizations []fixtures.Optimization
	Current       *fixtures.Optimization
	Types         []fixtures.OptimizationType
}

// ProjectsResponse is the JSON shape of GET /api/v1/projects.
type ProjectsResponse struct {
	Data   []map[string]any `json:"data"`
	Source string           `json:"source"`
}
