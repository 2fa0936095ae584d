package backend

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huabuyu/geoai/internal/config"
)

// --- Factory ---

func TestNew_StubMode(t *testing.T) {
	c := New(config.BackendConfig{Mode: config.BackendStub, URL: "https://x.supabase.co", APIKey: "k"})
	if c.Mode() != ModeStub {
		t.Errorf("expected stub, got %s", c.Mode())
	}
}

func TestNew_AutoWithoutCredentialsUsesStub(t *testing.T) {
	c := New(config.BackendConfig{Mode: config.BackendAuto})
	if c.Mode() != ModeStub {
		t.Errorf("expected stub, got %s", c.Mode())
	}
}

func TestNew_RemoteWithBadURLFallsBack(t *testing.T) {
	c := New(config.BackendConfig{Mode: config.BackendRemote, URL: "::not a url", APIKey: "k"})
	if c.Mode() != ModeStub {
		t.Errorf("expected fallback to stub, got %s", c.Mode())
	}
}

func TestNew_FailedProbeFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(config.BackendConfig{Mode: config.BackendRemote, URL: srv.URL, APIKey: "k", Probe: true})
	if c.Mode() != ModeStub {
		t.Errorf("expected fallback to stub, got %s", c.Mode())
	}
}

func TestNew_HealthyRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/health" {
			t.Errorf("unexpected probe path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(config.BackendConfig{Mode: config.BackendAuto, URL: srv.URL, APIKey: "k", Probe: true})
	if c.Mode() != ModeRemote {
		t.Errorf("expected remote, got %s", c.Mode())
	}
}

// --- Origins ---

func TestResolveOrigin(t *testing.T) {
	const fallback = "https://app.geoai.com"
	tests := []struct {
		origin string
		want   string
	}{
		{"http://localhost:5173", fallback},
		{"http://localhost", fallback},
		{"", fallback},
		{"https://geoai.example.org", "https://geoai.example.org"},
		{"https://geoai.example.org:8443/", "https://geoai.example.org:8443"},
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080"},
	}
	for _, tt := range tests {
		if got := ResolveOrigin(tt.origin, fallback); got != tt.want {
			t.Errorf("ResolveOrigin(%q) = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestVerifyRedirect(t *testing.T) {
	if got := VerifyRedirect("https://app.geoai.com/"); got != "https://app.geoai.com/verify-email" {
		t.Errorf("unexpected redirect %q", got)
	}
}

// --- Errors ---

func TestAuthError_IsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("login: %w", newAuthError(KindEmailUnconfirmed, "Email not confirmed", nil))
	if !errors.Is(err, ErrEmailUnconfirmed) {
		t.Error("expected errors.Is to match by kind")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("different kinds must not match")
	}
	if k, ok := KindOf(err); !ok || k != KindEmailUnconfirmed {
		t.Errorf("KindOf = %s, %v", k, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("plain errors have no kind")
	}
}

func TestAuthError_MessageFallsBackToKind(t *testing.T) {
	if ErrResendFailed.Error() != "resend_failed" {
		t.Errorf("unexpected sentinel text %q", ErrResendFailed.Error())
	}
}

func TestInDomains(t *testing.T) {
	domains := []string{"outlook.com"}
	if !InDomains("Someone@Outlook.com", domains) {
		t.Error("expected case-insensitive domain match")
	}
	if InDomains("someone@example.com", domains) || InDomains("not-an-email", domains) {
		t.Error("unexpected match")
	}
}
