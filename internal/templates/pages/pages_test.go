package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/huabuyu/geoai/internal/templates/layouts"
)

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	if err := ErrorPage(404, "not <here>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<h1>404</h1>") || !strings.Contains(out, "not &lt;here&gt;") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNotFound_LinksByAuth(t *testing.T) {
	var anon, authed bytes.Buffer
	if err := NotFound().Render(context.Background(), &anon); err != nil {
		t.Fatal(err)
	}
	ctx := layouts.SetIsAuthenticated(context.Background(), true)
	if err := NotFound().Render(ctx, &authed); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(anon.String(), "<h1>Empty</h1>") {
		t.Error("expected Empty heading")
	}
	if strings.Contains(anon.String(), "Go to dashboard") {
		t.Error("anonymous visitors should not be sent to the dashboard")
	}
	if !strings.Contains(authed.String(), "Go to dashboard") {
		t.Error("signed-in visitors should get a dashboard link")
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	if err := Recovery().Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Something went wrong", "Refresh Page"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q", want)
		}
	}
}
