// Package backend is the facade over the identity/data provider. One Client
// interface covers sign-up, sign-in, sign-out, token lookup, verification
// resend and table access. RemoteClient talks to a hosted GoTrue/PostgREST
// service; StubClient answers from fixed in-memory data. New picks one at
// startup and falls back to the stub when the remote client cannot be built.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/huabuyu/geoai/internal/config"
)

// Client is the single contract every caller depends on. All methods take a
// context and report expected failures as *AuthError values.
type Client interface {
	// SignUp registers an account. The returned user is unconfirmed.
	SignUp(ctx context.Context, email, password string, opts SignUpOptions) (*SignUpResult, error)

	// SignInWithPassword exchanges credentials for a user and session.
	SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error)

	// SignOut invalidates the provider-side session for accessToken.
	SignOut(ctx context.Context, accessToken string) error

	// GetUser resolves an access token. Unknown or empty tokens yield (nil, nil).
	GetUser(ctx context.Context, accessToken string) (*User, error)

	// Resend sends the verification email again.
	Resend(ctx context.Context, in ResendInput) error

	// From returns a handle on the named data table.
	From(table string) Table

	// Mode reports which implementation this is.
	Mode() Mode
}

// Table is the data-access half of the facade.
type Table interface {
	Select(ctx context.Context) (*Result, error)
	Insert(ctx context.Context, rows ...Record) (*Result, error)
	Update(ctx context.Context, values Record, match Match) (*Result, error)
	Delete(ctx context.Context, match Match) (*Result, error)
}

// probeTimeout bounds the startup health check.
const probeTimeout = 5 * time.Second

// New builds the process-wide Client. It never fails: when the remote
// client cannot be constructed (missing settings, bad URL, failed probe or
// a panic in construction) the in-memory stub is returned instead.
func New(cfg config.BackendConfig) Client {
	stub := func() Client {
		return NewStubClient(StubOptions{Latency: cfg.StubLatency})
	}

	switch cfg.Mode {
	case config.BackendStub:
		slog.Info("using in-memory backend stub")
		return stub()
	case config.BackendAuto:
		if cfg.URL == "" || cfg.APIKey == "" {
			slog.Info("backend credentials not configured, using in-memory stub")
			return stub()
		}
	}

	client, err := buildRemote(cfg)
	if err != nil {
		slog.Warn("remote backend unavailable, falling back to in-memory stub",
			slog.String("mode", cfg.Mode),
			slog.Any("error", err),
		)
		return stub()
	}

	slog.Info("using remote backend", slog.String("url", cfg.URL))
	return client
}

// buildRemote constructs and optionally probes the remote client. Panics
// during construction are converted into errors so New can fall back.
func buildRemote(cfg config.BackendConfig) (client *RemoteClient, err error) {
	defer func() {
		if r := recover(); r != nil {
			client = nil
			err = fmt.Errorf("constructing remote backend: %v", r)
		}
	}()

	client, err = NewRemoteClient(RemoteOptions{
		URL:            cfg.URL,
		APIKey:         cfg.APIKey,
		Timeout:        cfg.Timeout,
		DelayedDomains: cfg.DelayedDomains,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Probe {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		if err := client.Probe(ctx); err != nil {
			return nil, fmt.Errorf("probing remote backend: %w", err)
		}
	}
	return client, nil
}

// ResolveOrigin returns the origin to embed in verification links. Links
// generated while running on localhost would be useless in a user's inbox,
// so the fixed production origin is used instead.
func ResolveOrigin(origin, fallback string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || u.Hostname() == "localhost" {
		return fallback
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host, "/")
}

// VerifyRedirect is the verification landing URL for the given origin.
func VerifyRedirect(origin string) string {
	return strings.TrimRight(origin, "/") + "/verify-email"
}

// emailDomain returns the lowercased part after the last "@".
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// InDomains reports whether email belongs to one of domains.
func InDomains(email string, domains []string) bool {
	d := emailDomain(email)
	if d == "" {
		return false
	}
	for _, candidate := range domains {
		if strings.EqualFold(d, candidate) {
			return true
		}
	}
	return false
}
