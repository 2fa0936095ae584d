package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/fixtures"
)

// --- Mock Store ---

// mockStore implements Store for testing.
type mockStore struct {
	loadFn func(ctx context.Context, userID string) (*Workspace, bool, error)
	saveFn func(ctx context.Context, userID string, ws *Workspace) error
}

func (m *mockStore) Load(ctx context.Context, userID string) (*Workspace, bool, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx, userID)
	}
	return nil, false, nil
}

func (m *mockStore) Save(ctx context.Context, userID string, ws *Workspace) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, ws)
	}
	return nil
}

// --- Test Helpers ---

var testNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	svc := NewService(store, fixtures.NewStatic())
	svc.now = func() time.Time { return testNow }
	return svc
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status code %d, got %d", expectedCode, appErr.Code)
	}
}

// --- Get ---

func TestGet_SeedsFromFixtures(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ws, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Projects) != 3 || len(ws.Optimizations) != 3 {
		t.Errorf("expected seeded workspace, got %d projects %d optimizations",
			len(ws.Projects), len(ws.Optimizations))
	}
}

func TestGet_MissingUser(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	_, err := svc.Get(context.Background(), "")
	assertAppError(t, err, 500)
}

func TestGet_StoreFailure(t *testing.T) {
	svc := newTestService(&mockStore{
		loadFn: func(ctx context.Context, userID string) (*Workspace, bool, error) {
			return nil, false, errors.New("redis down")
		},
	})
	_, err := svc.Get(context.Background(), "u1")
	assertAppError(t, err, 500)
}

// --- Projects ---

func TestCreateProject_Success(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "u1", ProjectInput{Name: " <b>Acme</b> ", Domain: "Acme.COM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Acme" || p.Domain != "acme.com" {
		t.Errorf("expected sanitized fields, got %+v", p)
	}
	if p.VisibilityScore != 0 || p.CreatedAt != "2024-06-01" || !strings.HasPrefix(p.ID, "proj_") {
		t.Errorf("unexpected defaults %+v", p)
	}

	ws, _ := svc.Get(ctx, "u1")
	if len(ws.Projects) != 4 || ws.Projects[3].ID != p.ID {
		t.Errorf("expected project appended, got %+v", ws.Projects)
	}
}

func TestCreateProject_RequiredFields(t *testing.T) {
	saved := false
	svc := newTestService(&mockStore{
		saveFn: func(ctx context.Context, userID string, ws *Workspace) error {
			saved = true
			return nil
		},
	})

	for _, in := range []ProjectInput{{Name: "Acme"}, {Domain: "acme.com"}, {Name: "<i></i>", Domain: "acme.com"}} {
		_, err := svc.CreateProject(context.Background(), "u1", in)
		assertAppError(t, err, 422)
		if apperror.SafeMessage(err) != MsgRequiredFields {
			t.Errorf("unexpected message %q", apperror.SafeMessage(err))
		}
	}
	if saved {
		t.Error("invalid input must not reach the store")
	}
}

func TestUpdateProject(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ctx := context.Background()

	p, err := svc.UpdateProject(ctx, "u1", "proj_2", ProjectInput{Name: "Tech Co", Domain: "tech.co"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Tech Co" || p.VisibilityScore != 75 {
		t.Errorf("unexpected project %+v", p)
	}

	_, err = svc.UpdateProject(ctx, "u1", "proj_404", ProjectInput{Name: "x", Domain: "y"})
	assertAppError(t, err, 404)
}

func TestDeleteProject(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ctx := context.Background()

	if err := svc.DeleteProject(ctx, "u1", "proj_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ws, _ := svc.Get(ctx, "u1")
	if _, ok := ws.FindProject("proj_1"); ok {
		t.Error("project still present")
	}
	if len(ws.Projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(ws.Projects))
	}

	assertAppError(t, svc.DeleteProject(ctx, "u1", "proj_1"), 404)
}

func TestWorkspacesAreIsolatedPerUser(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ctx := context.Background()

	_ = svc.DeleteProject(ctx, "u1", "proj_1")
	ws, _ := svc.Get(ctx, "u2")
	if _, ok := ws.FindProject("proj_1"); !ok {
		t.Error("another user's edit leaked")
	}
}

// --- Optimizations ---

func TestGenerateOptimization_PrependsResult(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ctx := context.Background()

	opt, err := svc.GenerateOptimization(ctx, "u1", GenerateInput{ProjectID: "proj_1", Type: "faq", Keywords: "smart home"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Title != "FAQ Optimization for smart home" || opt.Date != "2024-06-01" {
		t.Errorf("unexpected optimization %+v", opt)
	}

	ws, _ := svc.Get(ctx, "u1")
	if ws.Optimizations[0].ID != opt.ID || len(ws.Optimizations) != 4 {
		t.Errorf("expected new optimization first, got %+v", ws.Optimizations[0])
	}
	if _, ok := ws.FindOptimization(opt.ID); !ok {
		t.Error("FindOptimization did not find the new item")
	}
}

func TestGenerateOptimization_Validation(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ctx := context.Background()

	_, err := svc.GenerateOptimization(ctx, "u1", GenerateInput{ProjectID: "proj_1", Type: "faq", Keywords: "   "})
	assertAppError(t, err, 422)
	if apperror.SafeMessage(err) != MsgKeywordsRequired {
		t.Errorf("unexpected message %q", apperror.SafeMessage(err))
	}

	_, err = svc.GenerateOptimization(ctx, "u1", GenerateInput{ProjectID: "proj_1", Type: "video", Keywords: "x"})
	assertAppError(t, err, 422)

	_, err = svc.GenerateOptimization(ctx, "u1", GenerateInput{ProjectID: "proj_9", Type: "page", Keywords: "x"})
	assertAppError(t, err, 404)
}
