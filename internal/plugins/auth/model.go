// Package auth connects the Backend Facade and the Session Store to HTTP:
// sign-in, sign-up, email verification, sign-out, the per-request session
// loader and the route guard for the dashboard.
//
// This is a CORE plugin -- always enabled.
package auth

import "regexp"

// Messages shown to the user. Wording matches the pages' toasts.
const (
	MsgRequiredFields     = "Please fill in all required fields"
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgPasswordTooShort   = "Password must be at least 8 characters long"
	MsgEmailRequired      = "Please enter your email address"
	MsgLoginSuccess       = "Login successful!"
	MsgLoginFailed        = "Login failed. Please try again."
	MsgEmailNotVerified   = "Your email address is not verified. Please check your email or request a new verification link."
	MsgAccountCreated     = "Account created successfully! Please check your email for verification."
	MsgSignupFailed       = "Signup failed. Please try again."
	MsgSpamFolderHint     = "Please check your spam folder or request a resend."
	MsgEmailVerified      = "Email verified successfully! Redirecting to login..."
	MsgResent             = "Verification email resent successfully!"
	MsgResendError        = "An error occurred while resending the verification email"
	MsgResendSpamHint     = "Please check your spam/junk folder if you don't see the email in your inbox."
	minPasswordLength     = 8
	verifyEmailPath       = "/verify-email"
	loginPath             = "/login"
	dashboardPath         = "/dashboard"
	emailVerificationType = "email"
)

// emailPattern is the loose address check used by every form.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// --- Request DTOs (bound from HTTP requests) ---

// LoginRequest holds the data submitted by the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SignupRequest holds the data submitted by the sign-up form.
type SignupRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
}

// ResendRequest holds the resend-verification form.
type ResendRequest struct {
	Email string `form:"email"`
}

// --- Service Input DTOs (passed from handler to service) ---

// LoginInput is the input for signing in.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput is the input for creating an account.
type SignupInput struct {
	Name       string
	Email      string
	Password   string
	Confirm    string
	RedirectTo string
}

// SessionResponse is the JSON shape of GET /api/v1/session.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	Backend       string       `json:"backend"`
}

// SessionUser is the public part of the signed-in user.
type SessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Confirmed bool   `json:"confirmed"`
}
