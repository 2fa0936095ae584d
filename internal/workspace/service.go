package workspace

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/sanitize"
)

// Messages shown for invalid input.
const (
	MsgRequiredFields   = "Please fill in all required fields"
	MsgKeywordsRequired = "Please enter keywords for optimization"
	MsgUnknownType      = "Please choose an optimization type"
)

// ProjectInput is the create/edit project form.
type ProjectInput struct {
	Name   string `form:"name"`
	Domain string `form:"domain"`
}

// GenerateInput is the optimization generator form.
type GenerateInput struct {
	ProjectID string `form:"project_id"`
	Type      string `form:"type"`
	Keywords  string `form:"keywords"`
}

// Service implements the project and optimization operations on top of a
// Store. Read-modify-write cycles are serialized within the process.
type Service struct {
	store    Store
	fixtures fixtures.Provider
	now      func() time.Time

	mu sync.Mutex
}

// NewService creates a workspace service.
func NewService(store Store, fx fixtures.Provider) *Service {
	return &Service{store: store, fixtures: fx, now: time.Now}
}

// Get returns the user's workspace, seeding it from the fixtures on first use.
func (s *Service) Get(ctx context.Context, userID string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

// CreateProject adds a project with a zero visibility score.
func (s *Service) CreateProject(ctx context.Context, userID string, in ProjectInput) (*fixtures.Project, error) {
	name, domain, err := cleanProject(in)
	if err != nil {
		return nil, err
	}

	var created fixtures.Project
	err = s.update(ctx, userID, func(ws *Workspace) error {
		created = fixtures.Project{
			ID:        newID("proj_"),
			Name:      name,
			Domain:    domain,
			CreatedAt: s.now().Format(time.DateOnly),
		}
		ws.Projects = append(ws.Projects, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject renames a project or changes its domain.
func (s *Service) UpdateProject(ctx context.Context, userID, projectID string, in ProjectInput) (*fixtures.Project, error) {
	name, domain, err := cleanProject(in)
	if err != nil {
		return nil, err
	}

	var updated fixtures.Project
	err = s.update(ctx, userID, func(ws *Workspace) error {
		for i := range ws.Projects {
			if ws.Projects[i].ID == projectID {
				ws.Projects[i].Name = name
				ws.Projects[i].Domain = domain
				updated = ws.Projects[i]
				return nil
			}
		}
		return apperror.NewNotFound("project not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, userID, projectID string) error {
	return s.update(ctx, userID, func(ws *Workspace) error {
		for i := range ws.Projects {
			if ws.Projects[i].ID == projectID {
				ws.Projects = append(ws.Projects[:i], ws.Projects[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFound("project not found")
	})
}

// GenerateOptimization creates placeholder content and puts it at the top
// of the user's optimization list.
func (s *Service) GenerateOptimization(ctx context.Context, userID string, in GenerateInput) (*fixtures.Optimization, error) {
	keywords := sanitize.Text(in.Keywords)
	if keywords == "" {
		return nil, apperror.NewValidation(MsgKeywordsRequired)
	}
	typ, ok := fixtures.ParseOptimizationType(in.Type)
	if !ok {
		return nil, apperror.NewValidation(MsgUnknownType)
	}

	var opt fixtures.Optimization
	err := s.update(ctx, userID, func(ws *Workspace) error {
		if _, ok := ws.FindProject(in.ProjectID); !ok {
			return apperror.NewNotFound("project not found")
		}
		opt = fixtures.GenerateOptimization(newID("opt_"), in.ProjectID, typ, keywords, s.now())
		ws.Optimizations = append([]fixtures.Optimization{opt}, ws.Optimizations...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

// --- internals ---

func (s *Service) load(ctx context.Context, userID string) (*Workspace, error) {
	if userID == "" {
		return nil, apperror.NewMissingContext()
	}
	ws, ok, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if ok {
		return ws, nil
	}
	return &Workspace{
		Projects:      s.fixtures.Projects(),
		Optimizations: s.fixtures.Optimizations(),
	}, nil
}

func (s *Service) update(ctx context.Context, userID string, mutate func(*Workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := mutate(ws); err != nil {
		return err
	}
	if err := s.store.Save(ctx, userID, ws); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func cleanProject(in ProjectInput) (name, domain string, err error) {
	name = sanitize.Text(in.Name)
	domain = strings.ToLower(sanitize.Text(in.Domain))
	if name == "" || domain == "" {
		return "", "", apperror.NewValidation(MsgRequiredFields)
	}
	return name, domain, nil
}

func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// FindProject returns a project from the workspace.
func (ws *Workspace) FindProject(id string) (fixtures.Project, bool) {
	for _, p := range ws.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return fixtures.Project{}, false
}

// FindOptimization returns an optimization from the workspace.
func (ws *Workspace) FindOptimization(id string) (fixtures.Optimization, bool) {
	for _, o := range ws.Optimizations {
		if o.ID == id {
			return o, true
		}
	}
	return fixtures.Optimization{}, false
}
