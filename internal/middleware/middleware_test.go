package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

// --- CSRF ---

func TestCSRF_IssuesCookieOnGet(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)

	if err := CSRF()(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != csrfCookieName {
		t.Fatalf("expected %s cookie, got %v", csrfCookieName, cookies)
	}
	if GetCSRFToken(c) != cookies[0].Value {
		t.Error("context token should match cookie")
	}
}

func TestCSRF_RejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc"})
	c := e.NewContext(req, httptest.NewRecorder())

	err := CSRF()(okHandler)(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestCSRF_AcceptsFormToken(t *testing.T) {
	e := echo.New()
	form := url.Values{CSRFFormField: {"abc"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc"})
	rec := httptest.NewRecorder()

	if err := CSRF()(okHandler)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCSRF_SkipsAPI(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/session", nil), rec)

	if err := CSRF()(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("API requests should not get a CSRF cookie")
	}
}

// --- Recovery ---

func TestRecovery_RendersFallback(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	render := func(c echo.Context) error {
		return c.HTML(http.StatusInternalServerError, "Something went wrong")
	}
	err := Recovery(render)(func(echo.Context) error { panic("boom") })(c)
	if err != nil {
		t.Fatalf("expected recovered nil error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Errorf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestRecovery_PlainTextWithoutRenderer(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = Recovery(nil)(func(echo.Context) error { panic("boom") })(c)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

// --- Logging ---

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var seen string
	h := RequestLogger()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusNoContent)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if seen == "" || rec.Header().Get(requestIDHeader) != seen {
		t.Errorf("expected request id header %q, got %q", seen, rec.Header().Get(requestIDHeader))
	}
}

// --- Proxy ---

func TestIPExtractor(t *testing.T) {
	extract := buildIPExtractor([]string{"10.0.0.0/8", "not-a-cidr"})

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"untrusted peer ignores header", "203.0.113.9:1234", "1.2.3.4", "203.0.113.9"},
		{"trusted peer uses leftmost", "10.1.2.3:1234", "1.2.3.4, 10.1.2.3", "1.2.3.4"},
		{"trusted peer without header", "10.1.2.3:1234", "", "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := extract(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Helpers ---

func TestRedirect(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	_ = Redirect(e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec), "/dashboard")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("expected 303 to /dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	_ = Redirect(e.NewContext(req, rec), "/dashboard")
	if rec.Header().Get("HX-Redirect") != "/dashboard" {
		t.Errorf("expected HX-Redirect, got %q", rec.Header().Get("HX-Redirect"))
	}
}

func TestSecurityHeaders_HSTSOnlyOverTLS(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	_ = SecurityHeaders()(okHandler)(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should not be sent over plain HTTP")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	_ = SecurityHeaders()(okHandler)(e.NewContext(req, rec))
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS behind TLS proxy")
	}
}
