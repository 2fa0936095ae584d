package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// csrfTokenLength is the number of random bytes in a token (64 hex chars).
	csrfTokenLength = 32

	// csrfCookieName holds the double-submit token.
	csrfCookieName = "geoai_csrf"

	// csrfHeaderName is the header HTMX sends the token in.
	csrfHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field rendered into every form.
	CSRFFormField = "csrf_token"

	contextKeyCSRF = "csrf_token"
)

// CSRF returns middleware implementing the double-submit cookie pattern on
// every state-changing request: sign-in, sign-up, sign-out, contact and demo
// requests, and the dashboard project forms.
//
//  1. If no token cookie exists, one is generated and set.
//  2. On POST, PUT, PATCH and DELETE the cookie value must equal either the
//     X-CSRF-Token header or the csrf_token form field.
//  3. Mismatches are rejected with 403.
//
// The /api prefix is read-only JSON and is skipped.
func CSRF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}

			cookieToken := ""
			if cookie, err := req.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
				cookieToken = cookie.Value
			} else {
				token, genErr := generateCSRFToken()
				if genErr != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate CSRF token")
				}
				c.SetCookie(&http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false, // Read by the HTMX config hook.
					Secure:   IsSecureRequest(c),
					SameSite: http.SameSiteLaxMode,
				})
				cookieToken = token
			}
			c.Set(contextKeyCSRF, cookieToken)

			if isSafeMethod(req.Method) {
				return next(c)
			}

			submitted := req.Header.Get(csrfHeaderName)
			if submitted == "" {
				submitted = req.FormValue(CSRFFormField)
			}

			if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(cookieToken)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or missing CSRF token")
			}

			return next(c)
		}
	}
}

// isSafeMethod returns true for HTTP methods that should not change state.
func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetCSRFToken returns the token for the current request, or "".
func GetCSRFToken(c echo.Context) string {
	token, _ := c.Get(contextKeyCSRF).(string)
	return token
}
