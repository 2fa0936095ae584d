package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 64 << 10

// RemoteOptions configures the hosted provider client.
type RemoteOptions struct {
	// URL is the provider project URL, without a trailing path.
	URL string

	// APIKey is the public key sent as the apikey header.
	APIKey string

	// Timeout bounds each HTTP call. Zero means 10s.
	Timeout time.Duration

	// DelayedDomains lists email domains whose confirmation mail is known
	// to arrive late.
	DelayedDomains []string

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client
}

// RemoteClient talks to a GoTrue (auth) and PostgREST (data) service, the
// layout used by Supabase projects.
type RemoteClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	delayed map[string]bool
}

// NewRemoteClient validates the options and builds a client. It performs
// no network I/O; call Probe to check reachability.
func NewRemoteClient(opts RemoteOptions) (*RemoteClient, error) {
	if opts.URL == "" {
		return nil, errors.New("backend URL is empty")
	}
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be an absolute http(s) URL", opts.URL)
	}
	if opts.APIKey == "" {
		return nil, errors.New("backend API key is empty")
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	delayed := make(map[string]bool, len(opts.DelayedDomains))
	for _, d := range opts.DelayedDomains {
		delayed[strings.ToLower(d)] = true
	}

	return &RemoteClient{
		baseURL: strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/"),
		apiKey:  opts.APIKey,
		http:    hc,
		delayed: delayed,
	}, nil
}

// Mode implements Client.
func (r *RemoteClient) Mode() Mode { return ModeRemote }

// Probe checks that the auth service answers its health endpoint.
func (r *RemoteClient) Probe(ctx context.Context) error {
	return r.do(ctx, http.MethodGet, "/auth/v1/health", nil, "", nil, nil, nil)
}

// --- Wire types ---

type gotrueUser struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

func (g *gotrueUser) toUser() *User {
	if g == nil || g.ID == "" {
		return nil
	}
	return &User{
		ID:               g.ID,
		Email:            g.Email,
		Name:             metaString(g.UserMetadata, "name"),
		Avatar:           metaString(g.UserMetadata, "avatar_url"),
		EmailConfirmedAt: g.EmailConfirmedAt,
		CreatedAt:        g.CreatedAt,
	}
}

func metaString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         *gotrueUser `json:"user"`
}

// gotrueSignUp is either a bare user (confirmation required) or a session
// carrying the user (auto-confirm enabled).
type gotrueSignUp struct {
	gotrueUser
	User *gotrueUser `json:"user"`
}

// providerError is the union of GoTrue and PostgREST error bodies.
type providerError struct {
	Status      int    `json:"-"`
	ErrorCode   string `json:"error_code"`
	Code        any    `json:"code"`
	ErrorName   string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
}

func (p *providerError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", p.Status, p.text())
}

// code returns the most specific machine-readable code in the body.
func (p *providerError) code() string {
	if p.ErrorCode != "" {
		return p.ErrorCode
	}
	if s, ok := p.Code.(string); ok && s != "" {
		return s
	}
	return p.ErrorName
}

func (p *providerError) text() string {
	for _, s := range []string{p.Msg, p.Message, p.Description, p.ErrorName} {
		if s != "" {
			return s
		}
	}
	return http.StatusText(p.Status)
}

// --- Auth ---

// SignUp implements Client.
func (r *RemoteClient) SignUp(ctx context.Context, email, password string, opts SignUpOptions) (*SignUpResult, error) {
	query := url.Values{}
	if opts.RedirectTo != "" {
		query.Set("redirect_to", opts.RedirectTo)
	}
	body := map[string]any{"email": email, "password": password}
	if len(opts.Data) > 0 {
		body["data"] = opts.Data
	}

	var out gotrueSignUp
	if err := r.do(ctx, http.MethodPost, "/auth/v1/signup", query, "", body, &out, nil); err != nil {
		return nil, mapSignUpError(err)
	}

	user := out.User.toUser()
	if user == nil {
		user = out.gotrueUser.toUser()
	}
	if user == nil {
		return nil, newAuthError(KindUnavailable, "Sign-up response did not include a user", nil)
	}

	result := &SignUpResult{User: user}
	if domain := emailDomain(email); r.delayed[domain] {
		result.Warning = newAuthError(KindDeliveryDelayed,
			fmt.Sprintf("Confirmation email sent, but may be delayed for %s addresses", domain), nil)
	}
	return result, nil
}

// SignInWithPassword implements Client.
func (r *RemoteClient) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	query := url.Values{"grant_type": {"password"}}
	body := map[string]string{"email": email, "password": password}

	var out gotrueSession
	if err := r.do(ctx, http.MethodPost, "/auth/v1/token", query, "", body, &out, nil); err != nil {
		return nil, mapSignInError(err)
	}

	user := out.User.toUser()
	if user == nil || out.AccessToken == "" {
		return nil, newAuthError(KindUnavailable, "Sign-in response was incomplete", nil)
	}

	return &SignInResult{
		User: user,
		Session: Session{
			AccessToken:  out.AccessToken,
			RefreshToken: out.RefreshToken,
			ExpiresAt:    sessionExpiry(out, time.Now()),
		},
	}, nil
}

// SignOut implements Client. A token the provider no longer recognizes is
// already signed out.
func (r *RemoteClient) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	err := r.do(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken, nil, nil, nil)
	var pe *providerError
	if errors.As(err, &pe) && (pe.Status == http.StatusUnauthorized || pe.Status == http.StatusForbidden) {
		return nil
	}
	if err != nil {
		return newAuthError(KindUnavailable, "Sign-out failed", err)
	}
	return nil
}

// GetUser implements Client.
func (r *RemoteClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, nil
	}
	var out gotrueUser
	err := r.do(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken, nil, &out, nil)
	var pe *providerError
	if errors.As(err, &pe) && (pe.Status == http.StatusUnauthorized || pe.Status == http.StatusForbidden) {
		return nil, nil
	}
	if err != nil {
		return nil, newAuthError(KindUnavailable, "Could not verify session", err)
	}
	return out.toUser(), nil
}

// Resend implements Client.
func (r *RemoteClient) Resend(ctx context.Context, in ResendInput) error {
	query := url.Values{}
	if in.RedirectTo != "" {
		query.Set("redirect_to", in.RedirectTo)
	}
	body := map[string]string{"type": "signup", "email": in.Email}
	if err := r.do(ctx, http.MethodPost, "/auth/v1/resend", query, "", body, nil, nil); err != nil {
		return newAuthError(KindResendFailed, msgResendFailed, err)
	}
	return nil
}

// --- Error mapping ---

func mapSignUpError(err error) error {
	var pe *providerError
	if !errors.As(err, &pe) {
		return newAuthError(KindUnavailable, "Sign-up service is unavailable", err)
	}
	switch pe.code() {
	case "user_already_exists", "email_exists":
		return newAuthError(KindDuplicateAccount, msgDuplicateAccount, pe)
	}
	// Older GoTrue releases omit error_code for duplicates.
	if strings.Contains(strings.ToLower(pe.text()), "already registered") {
		return newAuthError(KindDuplicateAccount, msgDuplicateAccount, pe)
	}
	if pe.Status >= 500 {
		return newAuthError(KindUnavailable, "Sign-up service is unavailable", pe)
	}
	return newAuthError(KindUnavailable, pe.text(), pe)
}

func mapSignInError(err error) error {
	var pe *providerError
	if !errors.As(err, &pe) {
		return newAuthError(KindUnavailable, "Sign-in service is unavailable", err)
	}
	switch pe.code() {
	case "email_not_confirmed":
		return newAuthError(KindEmailUnconfirmed, msgEmailUnconfirmed, pe)
	case "invalid_credentials", "invalid_grant":
		return newAuthError(KindInvalidCredentials, msgInvalidCredentials, pe)
	}
	if pe.Status >= 500 {
		return newAuthError(KindUnavailable, "Sign-in service is unavailable", pe)
	}
	return newAuthError(KindInvalidCredentials, msgInvalidCredentials, pe)
}

// sessionExpiry prefers the absolute expiry, then the relative one, then
// the exp claim of the access token itself.
func sessionExpiry(s gotrueSession, now time.Time) time.Time {
	if s.ExpiresAt > 0 {
		return time.Unix(s.ExpiresAt, 0)
	}
	if s.ExpiresIn > 0 {
		return now.Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	if exp, ok := tokenExpiry(s.AccessToken); ok {
		return exp
	}
	return now.Add(time.Hour)
}

// tokenExpiry reads the exp claim without verifying the signature. The
// provider remains the authority on validity; this only sizes the cookie.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// --- Transport ---

// do performs one JSON request. A non-2xx reply is returned as
// *providerError; out may be nil when the body is not needed.
func (r *RemoteClient) do(ctx context.Context, method, path string, query url.Values, token string, body, out any, header http.Header) error {
	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", r.apiKey)
	bearer := token
	if bearer == "" {
		bearer = r.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		pe := &providerError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, pe)
		return pe
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// --- Tables ---

type remoteTable struct {
	name   string
	client *RemoteClient
}

// From implements Client.
func (r *RemoteClient) From(table string) Table {
	return &remoteTable{name: table, client: r}
}

// representation asks PostgREST to echo the affected rows.
var representation = http.Header{"Prefer": {"return=representation"}}

func (t *remoteTable) path() string {
	return "/rest/v1/" + url.PathEscape(t.name)
}

func (t *remoteTable) Select(ctx context.Context) (*Result, error) {
	return t.call(ctx, http.MethodGet, url.Values{"select": {"*"}}, nil, nil)
}

func (t *remoteTable) Insert(ctx context.Context, rows ...Record) (*Result, error) {
	if len(rows) == 0 {
		return &Result{Data: []Record{}}, nil
	}
	return t.call(ctx, http.MethodPost, nil, rows, representation)
}

func (t *remoteTable) Update(ctx context.Context, values Record, match Match) (*Result, error) {
	filters, err := matchQuery(match)
	if err != nil {
		return nil, err
	}
	return t.call(ctx, http.MethodPatch, filters, values, representation)
}

func (t *remoteTable) Delete(ctx context.Context, match Match) (*Result, error) {
	filters, err := matchQuery(match)
	if err != nil {
		return nil, err
	}
	return t.call(ctx, http.MethodDelete, filters, nil, representation)
}

func (t *remoteTable) call(ctx context.Context, method string, query url.Values, body any, header http.Header) (*Result, error) {
	var rows []Record
	if err := t.client.do(ctx, method, t.path(), query, "", body, &rows, header); err != nil {
		return nil, newAuthError(KindUnavailable, fmt.Sprintf("%s on %s failed", method, t.name), err)
	}
	if rows == nil {
		rows = []Record{}
	}
	return &Result{Data: rows}, nil
}

// matchQuery turns column equality into PostgREST filters. An empty match
// is refused so a typo cannot update or delete a whole table.
func matchQuery(match Match) (url.Values, error) {
	if len(match) == 0 {
		return nil, errors.New("update and delete require at least one match column")
	}
	q := url.Values{}
	for col, v := range match {
		q.Set(col, "eq."+fmt.Sprint(v))
	}
	return q, nil
}
