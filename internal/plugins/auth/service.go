package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/backend"
	"github.com/huabuyu/geoai/internal/metrics"
	"github.com/huabuyu/geoai/internal/sanitize"
)

// Operation labels for auth metrics.
const (
	opSignIn  = "sign_in"
	opSignUp  = "sign_up"
	opSignOut = "sign_out"
	opResend  = "resend"
)

// AuthService validates auth input and forwards it to the Backend Facade.
// Expected failures come back as *apperror.AppError (validation) or
// *backend.AuthError (provider outcome).
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*backend.SignInResult, error)
	Signup(ctx context.Context, input SignupInput) (*backend.SignUpResult, error)
	ResendVerification(ctx context.Context, email, redirectTo string) error
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*backend.User, error)
	Mode() backend.Mode
}

type authService struct {
	client  backend.Client
	metrics metrics.Recorder
}

// NewAuthService creates an AuthService over the given client.
func NewAuthService(client backend.Client, rec metrics.Recorder) AuthService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &authService{client: client, metrics: rec}
}

// Login validates the credentials and signs in.
func (s *authService) Login(ctx context.Context, input LoginInput) (*backend.SignInResult, error) {
	email := sanitize.Email(input.Email)
	if email == "" || input.Password == "" {
		s.record(opSignIn, errValidation)
		return nil, apperror.NewValidation(MsgRequiredFields)
	}

	res, err := s.client.SignInWithPassword(ctx, email, input.Password)
	s.record(opSignIn, err)
	if err != nil {
		slog.Info("sign-in rejected", slog.String("email", email), slog.Any("error", err))
		return nil, err
	}

	slog.Info("user signed in", slog.String("user_id", res.User.ID))
	return res, nil
}

// Signup validates the form and creates the account. A delivery warning
// is returned inside the result, never as an error.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*backend.SignUpResult, error) {
	email := sanitize.Email(input.Email)
	if msg := validateSignup(email, input.Password, input.Confirm); msg != "" {
		s.record(opSignUp, errValidation)
		return nil, apperror.NewValidation(msg)
	}

	opts := backend.SignUpOptions{RedirectTo: input.RedirectTo}
	if name := sanitize.Text(input.Name); name != "" {
		opts.Data = map[string]string{"name": name}
	}

	res, err := s.client.SignUp(ctx, email, input.Password, opts)
	s.record(opSignUp, err)
	if err != nil {
		slog.Info("sign-up rejected", slog.String("email", email), slog.Any("error", err))
		return nil, err
	}

	if res.Warning != nil {
		slog.Warn("sign-up succeeded with warning",
			slog.String("user_id", res.User.ID),
			slog.Any("warning", res.Warning),
		)
	} else {
		slog.Info("user signed up", slog.String("user_id", res.User.ID))
	}
	return res, nil
}

// ResendVerification asks the provider to send the confirmation mail again.
func (s *authService) ResendVerification(ctx context.Context, email, redirectTo string) error {
	email = sanitize.Email(email)
	if email == "" {
		s.record(opResend, errValidation)
		return apperror.NewValidation(MsgEmailRequired)
	}

	err := s.client.Resend(ctx, backend.ResendInput{Email: email, RedirectTo: redirectTo})
	s.record(opResend, err)
	if err != nil {
		slog.Info("verification resend failed", slog.String("email", email), slog.Any("error", err))
	}
	return err
}

// Logout invalidates the token at the provider.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	err := s.client.SignOut(ctx, accessToken)
	s.record(opSignOut, err)
	return err
}

// CurrentUser resolves a token to its user. (nil, nil) means the token is
// not valid.
func (s *authService) CurrentUser(ctx context.Context, accessToken string) (*backend.User, error) {
	if accessToken == "" {
		return nil, nil
	}
	return s.client.GetUser(ctx, accessToken)
}

// Mode reports which backend implementation is serving requests.
func (s *authService) Mode() backend.Mode {
	return s.client.Mode()
}

// errValidation marks an attempt rejected before reaching the backend.
var errValidation = errors.New("validation")

func (s *authService) record(op string, err error) {
	s.metrics.RecordAuthAttempt(op, outcome(err))
}

// outcome maps an error to a metrics label.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, errValidation) {
		return "validation"
	}
	if kind, ok := backend.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}

// validateSignup returns the first problem with the sign-up form, or "".
func validateSignup(email, password, confirm string) string {
	switch {
	case email == "" || password == "":
		return MsgRequiredFields
	case !ValidEmail(email):
		return MsgInvalidEmail
	case password != confirm:
		return MsgPasswordMismatch
	case len(password) < minPasswordLength:
		return MsgPasswordTooShort
	}
	return ""
}
