package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/backend"
)

// --- Mock Client ---

// mockClient implements backend.Client for testing.
type mockClient struct {
	signUpFn  func(ctx context.Context, email, password string, opts backend.SignUpOptions) (*backend.SignUpResult, error)
	signInFn  func(ctx context.Context, email, password string) (*backend.SignInResult, error)
	signOutFn func(ctx context.Context, token string) error
	getUserFn func(ctx context.Context, token string) (*backend.User, error)
	resendFn  func(ctx context.Context, in backend.ResendInput) error

	calls int
}

func (m *mockClient) SignUp(ctx context.Context, email, password string, opts backend.SignUpOptions) (*backend.SignUpResult, error) {
	m.calls++
	if m.signUpFn != nil {
		return m.signUpFn(ctx, email, password, opts)
	}
	return &backend.SignUpResult{User: &backend.User{ID: "user_new", Email: email}}, nil
}

func (m *mockClient) SignInWithPassword(ctx context.Context, email, password string) (*backend.SignInResult, error) {
	m.calls++
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password)
	}
	return nil, backend.ErrInvalidCredentials
}

func (m *mockClient) SignOut(ctx context.Context, token string) error {
	m.calls++
	if m.signOutFn != nil {
		return m.signOutFn(ctx, token)
	}
	return nil
}

func (m *mockClient) GetUser(ctx context.Context, token string) (*backend.User, error) {
	m.calls++
	if m.getUserFn != nil {
		return m.getUserFn(ctx, token)
	}
	return nil, nil
}

func (m *mockClient) Resend(ctx context.Context, in backend.ResendInput) error {
	m.calls++
	if m.resendFn != nil {
		return m.resendFn(ctx, in)
	}
	return nil
}

func (m *mockClient) From(string) backend.Table { return nil }

func (m *mockClient) Mode() backend.Mode { return backend.ModeStub }

// --- Mock Recorder ---

type mockRecorder struct {
	attempts  map[string]int
	redirects int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{attempts: make(map[string]int)}
}

func (r *mockRecorder) RecordAuthAttempt(op, outcome string) { r.attempts[op+"/"+outcome]++ }
func (r *mockRecorder) RecordGuardRedirect()                 { r.redirects++ }
func (r *mockRecorder) SetBackendMode(string)                {}

// assertAppError checks that err is an *apperror.AppError with the expected code.
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
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Login Tests ---

func TestLogin_MissingFieldsNeverCallsBackend(t *testing.T) {
	client := &mockClient{}
	rec := newMockRecorder()
	svc := NewAuthService(client, rec)

	_, err := svc.Login(context.Background(), LoginInput{Email: "  ", Password: "x"})
	assertAppError(t, err, 422)
	if client.calls != 0 {
		t.Errorf("expected no backend calls, got %d", client.calls)
	}
	if rec.attempts["sign_in/validation"] != 1 {
		t.Errorf("expected validation outcome, got %v", rec.attempts)
	}
}

func TestLogin_NormalizesEmail(t *testing.T) {
	var gotEmail string
	client := &mockClient{
		signInFn: func(_ context.Context, email, _ string) (*backend.SignInResult, error) {
			gotEmail = email
			return &backend.SignInResult{User: &backend.User{ID: "u1"}}, nil
		},
	}
	rec := newMockRecorder()
	svc := NewAuthService(client, rec)

	if _, err := svc.Login(context.Background(), LoginInput{Email: " Demo@Example.com ", Password: "password"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotEmail != "demo@example.com" {
		t.Errorf("expected normalized email, got %q", gotEmail)
	}
	if rec.attempts["sign_in/success"] != 1 {
		t.Errorf("expected success outcome, got %v", rec.attempts)
	}
}

func TestLogin_UnconfirmedEmail(t *testing.T) {
	svc := NewAuthService(backend.NewStubClient(backend.StubOptions{}), nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: backend.SlowDeliveryEmail, Password: "whatever"})
	if !errors.Is(err, backend.ErrEmailUnconfirmed) {
		t.Fatalf("expected unconfirmed error, got %v", err)
	}
}

func TestLogin_RecordsKindOutcome(t *testing.T) {
	rec := newMockRecorder()
	svc := NewAuthService(&mockClient{}, rec)

	_, _ = svc.Login(context.Background(), LoginInput{Email: "a@b.co", Password: "nope"})
	if rec.attempts["sign_in/invalid_credentials"] != 1 {
		t.Errorf("expected invalid_credentials outcome, got %v", rec.attempts)
	}
}

// --- Signup Tests ---

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input SignupInput
		msg   string
	}{
		{"missing email", SignupInput{Password: "password1", Confirm: "password1"}, MsgRequiredFields},
		{"missing password", SignupInput{Email: "a@b.co"}, MsgRequiredFields},
		{"malformed email", SignupInput{Email: "a@b", Password: "password1", Confirm: "password1"}, MsgInvalidEmail},
		{"mismatch", SignupInput{Email: "a@b.co", Password: "password1", Confirm: "password2"}, MsgPasswordMismatch},
		{"too short", SignupInput{Email: "a@b.co", Password: "short", Confirm: "short"}, MsgPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{}
			svc := NewAuthService(client, nil)

			_, err := svc.Signup(context.Background(), tt.input)
			assertAppError(t, err, 422)
			if got := apperror.SafeMessage(err); got != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, got)
			}
			if client.calls != 0 {
				t.Error("backend must not be called for invalid input")
			}
		})
	}
}

func TestSignup_PassesRedirectAndName(t *testing.T) {
	var got backend.SignUpOptions
	client := &mockClient{
		signUpFn: func(_ context.Context, email, _ string, opts backend.SignUpOptions) (*backend.SignUpResult, error) {
			got = opts
			return &backend.SignUpResult{User: &backend.User{ID: "u1", Email: email}}, nil
		},
	}
	svc := NewAuthService(client, nil)

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:       "<b>Ada</b>",
		Email:      "ada@example.com",
		Password:   "password1",
		Confirm:    "password1",
		RedirectTo: "https://app.geoai.com/verify-email",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RedirectTo != "https://app.geoai.com/verify-email" {
		t.Errorf("unexpected redirect %q", got.RedirectTo)
	}
	if got.Data["name"] != "Ada" {
		t.Errorf("expected sanitized name, got %q", got.Data["name"])
	}
}

func TestSignup_WarningIsNotAnError(t *testing.T) {
	svc := NewAuthService(backend.NewStubClient(backend.StubOptions{}), nil)

	res, err := svc.Signup(context.Background(), SignupInput{
		Email: backend.SlowDeliveryEmail, Password: "password1", Confirm: "password1",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !errors.Is(res.Warning, backend.ErrDeliveryDelayed) {
		t.Errorf("expected delivery warning, got %v", res.Warning)
	}
}

func TestSignup_Duplicate(t *testing.T) {
	svc := NewAuthService(backend.NewStubClient(backend.StubOptions{}), nil)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email: backend.DuplicateEmail, Password: "password1", Confirm: "password1",
	})
	if !errors.Is(err, backend.ErrDuplicateAccount) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

// --- Resend / Session Tests ---

func TestResendVerification_RequiresEmail(t *testing.T) {
	client := &mockClient{}
	svc := NewAuthService(client, nil)

	assertAppError(t, svc.ResendVerification(context.Background(), "", ""), 422)
	if client.calls != 0 {
		t.Error("backend must not be called without an email")
	}
}

func TestCurrentUser_EmptyTokenShortCircuits(t *testing.T) {
	client := &mockClient{}
	svc := NewAuthService(client, nil)

	u, err := svc.CurrentUser(context.Background(), "")
	if u != nil || err != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", u, err)
	}
	if client.calls != 0 {
		t.Error("empty token must not reach the backend")
	}
}

func TestOutcome(t *testing.T) {
	if outcome(nil) != "success" {
		t.Error("nil should be success")
	}
	if outcome(errors.New("boom")) != "error" {
		t.Error("untyped errors should be error")
	}
	if outcome(backend.ErrResendFailed) != "resend_failed" {
		t.Error("auth errors should use their kind")
	}
}
