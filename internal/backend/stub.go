package backend

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fixed identities understood by the stub.
const (
	DemoEmail        = "demo@example.com"
	DemoPassword     = "password"
	DemoUserID       = "user_demo_123"
	DemoToken        = "mock_jwt_token"
	DemoRefreshToken = "mock_refresh_token"

	// DuplicateEmail is always reported as already registered.
	DuplicateEmail = "test@example.com"

	// SlowDeliveryEmail signs up with a delivery warning, cannot sign in
	// until verified, and is the only address resend succeeds for.
	SlowDeliveryEmail = "lxq19911029@outlook.com"
)

// Messages returned by the stub. The remote client uses the same wording
// where the provider gives no message of its own.
const (
	msgDuplicateAccount   = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgEmailUnconfirmed   = "Email not confirmed. Please verify your email address before signing in."
	msgResendFailed       = "Failed to resend verification email"
)

var demoCreatedAt = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// StubOptions configures the in-memory client.
type StubOptions struct {
	// Latency delays every call to imitate a network round trip.
	Latency time.Duration

	// Now overrides the clock (tests).
	Now func() time.Time
}

// StubClient answers every call from fixed data. It never validates
// tokens beyond comparing them with DemoToken.
type StubClient struct {
	latency time.Duration
	now     func() time.Time
}

// NewStubClient creates a stub client.
func NewStubClient(opts StubOptions) *StubClient {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &StubClient{latency: opts.Latency, now: now}
}

// Mode implements Client.
func (s *StubClient) Mode() Mode { return ModeStub }

// SignUp implements Client.
func (s *StubClient) SignUp(ctx context.Context, email, password string, opts SignUpOptions) (*SignUpResult, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if strings.EqualFold(email, DuplicateEmail) {
		return nil, newAuthError(KindDuplicateAccount, msgDuplicateAccount, nil)
	}

	user := &User{
		ID:        stubUserID(),
		Email:     email,
		Name:      opts.Data["name"],
		CreatedAt: s.now().UTC(),
	}
	result := &SignUpResult{User: user}

	if strings.EqualFold(email, SlowDeliveryEmail) {
		result.Warning = newAuthError(KindDeliveryDelayed,
			"Confirmation email sent, but may be delayed for Outlook domains", nil)
	}
	return result, nil
}

// SignInWithPassword implements Client.
func (s *StubClient) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	switch {
	case strings.EqualFold(email, DemoEmail) && password == DemoPassword:
		now := s.now()
		return &SignInResult{
			User: s.demoUser(now),
			Session: Session{
				AccessToken:  DemoToken,
				RefreshToken: DemoRefreshToken,
				ExpiresAt:    now.Add(time.Hour),
			},
		}, nil
	case strings.EqualFold(email, SlowDeliveryEmail):
		return nil, newAuthError(KindEmailUnconfirmed, msgEmailUnconfirmed, nil)
	default:
		return nil, newAuthError(KindInvalidCredentials, msgInvalidCredentials, nil)
	}
}

// SignOut implements Client. The stub has no server-side session to drop.
func (s *StubClient) SignOut(ctx context.Context, accessToken string) error {
	return s.wait(ctx)
}

// GetUser implements Client.
func (s *StubClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if accessToken != DemoToken {
		return nil, nil
	}
	return s.demoUser(s.now()), nil
}

// Resend implements Client.
func (s *StubClient) Resend(ctx context.Context, in ResendInput) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(in.Email), SlowDeliveryEmail) {
		return newAuthError(KindResendFailed, msgResendFailed, nil)
	}
	return nil
}

// From implements Client.
func (s *StubClient) From(table string) Table {
	return &stubTable{name: table, client: s}
}

func (s *StubClient) demoUser(now time.Time) *User {
	confirmed := now.UTC()
	return &User{
		ID:               DemoUserID,
		Email:            DemoEmail,
		Name:             "Demo User",
		EmailConfirmedAt: &confirmed,
		CreatedAt:        demoCreatedAt,
	}
}

// wait sleeps for the configured latency, returning early with an
// unavailable error if the context is cancelled.
func (s *StubClient) wait(ctx context.Context) error {
	if s.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return newAuthError(KindUnavailable, "request cancelled", err)
		}
		return nil
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return newAuthError(KindUnavailable, "request cancelled", ctx.Err())
	}
}

// stubUserID mimics the provider's opaque ids: "user_" plus nine lowercase
// alphanumerics.
func stubUserID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// --- Tables ---

type stubTable struct {
	name   string
	client *StubClient
}

// stubProjects is what the stub returns for the "projects" table.
func stubProjects() []Record {
	return []Record{
		{"id": "proj_1", "name": "Brand A", "domain": "branda.com", "created_at": "2023-01-01T00:00:00Z"},
		{"id": "proj_2", "name": "Brand B", "domain": "brandb.com", "created_at": "2023-01-02T00:00:00Z"},
	}
}

func (t *stubTable) Select(ctx context.Context) (*Result, error) {
	if err := t.client.wait(ctx); err != nil {
		return nil, err
	}
	if t.name == "projects" {
		return &Result{Data: stubProjects()}, nil
	}
	return &Result{Data: []Record{}}, nil
}

func (t *stubTable) Insert(ctx context.Context, rows ...Record) (*Result, error) {
	return t.empty(ctx)
}

func (t *stubTable) Update(ctx context.Context, values Record, match Match) (*Result, error) {
	return t.empty(ctx)
}

func (t *stubTable) Delete(ctx context.Context, match Match) (*Result, error) {
	return t.empty(ctx)
}

func (t *stubTable) empty(ctx context.Context) (*Result, error) {
	if err := t.client.wait(ctx); err != nil {
		return nil, err
	}
	return &Result{Data: []Record{}}, nil
}
