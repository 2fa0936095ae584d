package backend

import "time"

// Mode identifies which Client implementation is serving the process.
type Mode string

const (
	// ModeRemote is the hosted identity/data provider.
	ModeRemote Mode = "remote"

	// ModeStub is the in-memory stand-in used for demos and tests.
	ModeStub Mode = "stub"
)

// User is an account as reported by the identity provider. A nil
// EmailConfirmedAt means the address has not been verified yet.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name,omitempty"`
	Avatar           string     `json:"avatar,omitempty"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Confirmed reports whether the user's email address is verified.
func (u *User) Confirmed() bool {
	return u != nil && u.EmailConfirmedAt != nil
}

// DisplayName returns the user's name, or "User" when none is known.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "User"
	}
	return u.Name
}

// Session is the credential pair issued on sign-in.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SignUpOptions carries the verification redirect and profile metadata
// stored with a new account.
type SignUpOptions struct {
	// RedirectTo is where the verification link sends the user.
	RedirectTo string

	// Data is free-form profile metadata (e.g. "name").
	Data map[string]string
}

// SignUpResult is a successful registration. Warning is set when the
// account was created but something non-fatal went wrong, such as a
// confirmation email that is known to arrive late.
type SignUpResult struct {
	User    *User
	Warning error
}

// SignInResult is a successful password sign-in.
type SignInResult struct {
	User    *User
	Session Session
}

// ResendInput asks the provider to send the verification email again.
type ResendInput struct {
	Email      string
	RedirectTo string
}

// Record is one row of a data table.
type Record map[string]any

// Match selects rows by column equality for Update and Delete.
type Match map[string]any

// Result is the outcome of a data-table call.
type Result struct {
	Data []Record `json:"data"`
}
