package layouts

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestBase_Anonymous(t *testing.T) {
	out := render(t, context.Background(), Base("Home", text("<p>hi</p>")))

	for _, want := range []string{"<title>Home | GEO AI</title>", `href="/login"`, `href="/signup"`, "<p>hi</p>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Contains(out, `action="/logout"`) {
		t.Error("anonymous header must not offer logout")
	}
}

func TestBase_AuthenticatedWithToasts(t *testing.T) {
	ctx := SetIsAuthenticated(context.Background(), true)
	ctx = SetCSRFToken(ctx, "tok")
	ctx = SetToasts(ctx, []Toast{{Kind: "success", Text: "Login <ok>"}})

	out := render(t, ctx, Base("Home", nil))

	if !strings.Contains(out, `action="/logout"`) || !strings.Contains(out, `value="tok"`) {
		t.Error("expected logout form with CSRF token")
	}
	if !strings.Contains(out, "Login &lt;ok&gt;") {
		t.Errorf("expected escaped toast, got %s", out)
	}
}

func TestApp_HighlightsActivePath(t *testing.T) {
	ctx := SetActivePath(context.Background(), "/projects")
	ctx = SetUserName(ctx, "Demo User")

	out := render(t, ctx, App("Projects", nil))

	if !strings.Contains(out, `href="/projects" class="active"`) {
		t.Error("expected projects link to be active")
	}
	if strings.Contains(out, `href="/dashboard" class="active"`) {
		t.Error("dashboard link should not be active")
	}
	if !strings.Contains(out, "Demo User") {
		t.Error("expected user name in header")
	}
}

func TestHTML_URLSanitizes(t *testing.T) {
	var buf bytes.Buffer
	h := NewHTML(&buf)
	h.URL("javascript:alert(1)")
	if strings.Contains(buf.String(), "javascript") {
		t.Errorf("expected unsafe URL to be replaced, got %q", buf.String())
	}
}
