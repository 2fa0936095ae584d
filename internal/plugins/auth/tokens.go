package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// tokenCookieName is the persisted access token.
const tokenCookieName = "authToken"

// cookieTokens is the session.TokenStorage backed by the authToken cookie.
// Reads come from the request; writes go to the response and are visible to
// later reads in the same request.
type cookieTokens struct {
	c      echo.Context
	secure bool
	token  string
}

func newCookieTokens(c echo.Context, secure bool) *cookieTokens {
	t := &cookieTokens{c: c, secure: secure}
	if cookie, err := c.Cookie(tokenCookieName); err == nil {
		t.token = cookie.Value
	}
	return t
}

// Token implements session.TokenStorage.
func (t *cookieTokens) Token() string {
	return t.token
}

// SetToken implements session.TokenStorage. A zero expiry yields a browser
// session cookie.
func (t *cookieTokens) SetToken(token string, expiresAt time.Time) {
	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt.UTC()
		if maxAge := int(time.Until(expiresAt).Seconds()); maxAge > 0 {
			cookie.MaxAge = maxAge
		}
	}
	t.c.SetCookie(cookie)
	t.token = token
}

// RemoveToken implements session.TokenStorage by expiring the cookie.
func (t *cookieTokens) RemoveToken() {
	t.c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	t.token = ""
}
