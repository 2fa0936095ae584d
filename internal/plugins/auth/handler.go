package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/backend"
	"github.com/huabuyu/geoai/internal/flash"
	"github.com/huabuyu/geoai/internal/middleware"
)

// HandlerConfig holds the settings handlers need from config.BackendConfig.
type HandlerConfig struct {
	// ProductionOrigin replaces localhost origins in verification links.
	ProductionOrigin string

	// DelayedDomains get the spam-folder hint.
	DelayedDomains []string
}

// Handler handles HTTP requests for authentication. Handlers are thin: they
// bind the request, call the service, update the Session Store and choose
// where the browser goes next.
type Handler struct {
	service AuthService
	cfg     HandlerConfig
}

// NewHandler creates a new auth handler.
func NewHandler(service AuthService, cfg HandlerConfig) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// LoginForm renders the sign-in page (GET /login).
func (h *Handler) LoginForm(c echo.Context) error {
	if GetStore(c).IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return middleware.Render(c, http.StatusOK, LoginPage(LoginRequest{}))
}

// Login processes the sign-in form (POST /login). On success the token is
// persisted, the store marked authenticated and the browser sent to the
// dashboard. An unconfirmed address goes to the verification page; any
// other failure re-renders the form.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	store := GetStore(c)
	done := store.Begin()
	res, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	done()

	if err != nil {
		if errors.Is(err, backend.ErrEmailUnconfirmed) {
			flash.Error(c, MsgEmailNotVerified)
			return middleware.Redirect(c, verifyURL(req.Email))
		}
		flash.Now(c, flash.KindError, failureMessage(err, MsgLoginFailed))
		req.Password = ""
		return middleware.Render(c, http.StatusOK, LoginPage(req))
	}

	store.PersistToken(res.Session.AccessToken, res.Session.ExpiresAt)
	if err := store.SetAuthenticated(res.User); err != nil {
		return apperror.NewInternal(err)
	}

	flash.Success(c, MsgLoginSuccess)
	return middleware.Redirect(c, dashboardPath)
}

// SignupForm renders the sign-up page (GET /signup).
func (h *Handler) SignupForm(c echo.Context) error {
	if GetStore(c).IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return middleware.Render(c, http.StatusOK, SignupPage(SignupRequest{}))
}

// Signup processes the sign-up form (POST /signup). The new account is not
// signed in; the browser goes to the verification page.
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	done := GetStore(c).Begin()
	res, err := h.service.Signup(c.Request().Context(), SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Confirm:    req.Confirm,
		RedirectTo: backend.VerifyRedirect(h.origin(c)),
	})
	done()

	if err != nil {
		flash.Now(c, flash.KindError, failureMessage(err, MsgSignupFailed))
		req.Password, req.Confirm = "", ""
		return middleware.Render(c, http.StatusOK, SignupPage(req))
	}

	flash.Success(c, MsgAccountCreated)
	if res.Warning != nil {
		flash.Warning(c, res.Warning.Error()+". "+MsgSpamFolderHint)
	}
	return middleware.Redirect(c, verifyURL(req.Email))
}

// VerifyEmail renders the verification page (GET /verify-email). A link
// from the confirmation mail (type=email with a token) is acknowledged and
// forwarded to sign-in.
func (h *Handler) VerifyEmail(c echo.Context) error {
	if c.QueryParam("type") == emailVerificationType && c.QueryParam("token") != "" {
		flash.Success(c, MsgEmailVerified)
		return c.Redirect(http.StatusSeeOther, loginPath)
	}

	email := c.QueryParam("email")
	return middleware.Render(c, http.StatusOK, VerifyEmailPage(email, backend.InDomains(email, h.cfg.DelayedDomains)))
}

// Resend asks for another confirmation mail (POST /verify-email/resend).
func (h *Handler) Resend(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	redirectTo := backend.VerifyRedirect(h.origin(c)) + "?email=" + url.QueryEscape(req.Email)
	err := h.service.ResendVerification(c.Request().Context(), req.Email, redirectTo)

	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		flash.Error(c, appErr.Message)
	case errors.Is(err, backend.ErrResendFailed):
		flash.Error(c, err.Error())
	case err != nil:
		flash.Error(c, MsgResendError)
	default:
		flash.Success(c, MsgResent)
		if backend.InDomains(req.Email, h.cfg.DelayedDomains) {
			flash.Warning(c, MsgResendSpamHint)
		}
	}
	return middleware.Redirect(c, verifyURL(req.Email))
}

// Logout signs out at the provider, clears the session and the cookie and
// returns to the sign-in page (POST /logout). Provider failures are logged
// only; the local session is always cleared.
func (h *Handler) Logout(c echo.Context) error {
	store := GetStore(c)
	if token := store.Token(); token != "" {
		if err := h.service.Logout(c.Request().Context(), token); err != nil {
			slog.Warn("provider sign-out failed", slog.Any("error", err))
		}
	}
	store.Logout()

	return middleware.Redirect(c, loginPath)
}

// Session reports the current session as JSON (GET /api/v1/session).
func (h *Handler) Session(c echo.Context) error {
	resp := SessionResponse{Backend: string(h.service.Mode())}
	if u := GetStore(c).User(); u != nil {
		resp.Authenticated = true
		resp.User = &SessionUser{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.DisplayName(),
			Confirmed: u.Confirmed(),
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// origin is the public origin for links in outgoing mail.
func (h *Handler) origin(c echo.Context) string {
	return backend.ResolveOrigin(c.Scheme()+"://"+c.Request().Host, h.cfg.ProductionOrigin)
}

// verifyURL is the verification page for email.
func verifyURL(email string) string {
	return verifyEmailPath + "?email=" + url.QueryEscape(email)
}

// failureMessage picks the text to show for a failed auth call: validation
// and provider messages are shown as-is, outages get the generic fallback.
func failureMessage(err error, fallback string) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if kind, ok := backend.KindOf(err); ok && kind != backend.KindUnavailable {
		return err.Error()
	}
	return fallback
}
