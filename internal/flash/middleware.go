package flash

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// visitorCookieName identifies an anonymous browser for flash delivery.
const visitorCookieName = "geoai_visitor"

// visitorMaxAge keeps the visitor id for a year.
const visitorMaxAge = 365 * 24 * 60 * 60

// Echo context keys.
const (
	contextKeyFlasher = "flash_flasher"
	contextKeyVisitor = "flash_visitor_id"
	contextKeyNow     = "flash_now"
)

// Flasher binds a Store to requests.
type Flasher struct {
	store Store
}

// New creates a Flasher over store.
func New(store Store) *Flasher {
	return &Flasher{store: store}
}

// Middleware assigns a visitor id cookie when missing and makes the Flasher
// available to handlers through the package functions below.
func (f *Flasher) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(visitorCookieName); err == nil {
				if _, perr := uuid.Parse(cookie.Value); perr == nil {
					id = cookie.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				req := c.Request()
				c.SetCookie(&http.Cookie{
					Name:     visitorCookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
					SameSite: http.SameSiteLaxMode,
					MaxAge:   visitorMaxAge,
				})
			}

			c.Set(contextKeyVisitor, id)
			c.Set(contextKeyFlasher, f)
			return next(c)
		}
	}
}

// Success queues a success message for the next page.
func Success(c echo.Context, text string) { push(c, KindSuccess, text) }

// Error queues an error message for the next page.
func Error(c echo.Context, text string) { push(c, KindError, text) }

// Warning queues a warning message for the next page.
func Warning(c echo.Context, text string) { push(c, KindWarning, text) }

// Info queues an informational message for the next page.
func Info(c echo.Context, text string) { push(c, KindInfo, text) }

// Now attaches a message to the page being rendered in this request,
// without going through the store. Used when a form is re-rendered.
func Now(c echo.Context, kind, text string) {
	msgs, _ := c.Get(contextKeyNow).([]Message)
	c.Set(contextKeyNow, append(msgs, Message{Kind: kind, Text: text}))
}

// Pop returns the queued messages plus any attached with Now, and clears
// the queue. Safe to call more than once per request.
func Pop(c echo.Context) []Message {
	var out []Message
	f, _ := c.Get(contextKeyFlasher).(*Flasher)
	id, _ := c.Get(contextKeyVisitor).(string)
	if f != nil && id != "" {
		queued, err := f.store.Drain(c.Request().Context(), id)
		if err != nil {
			slog.Warn("draining flash messages failed", slog.Any("error", err))
		}
		out = append(out, queued...)
	}
	if now, ok := c.Get(contextKeyNow).([]Message); ok {
		out = append(out, now...)
		c.Set(contextKeyNow, nil)
	}
	return out
}

// VisitorID returns the anonymous visitor id for the request.
func VisitorID(c echo.Context) string {
	id, _ := c.Get(contextKeyVisitor).(string)
	return id
}

// push queues a message. Without the middleware (or on store failure) the
// message is attached to the current request instead so it is not lost.
func push(c echo.Context, kind, text string) {
	f, _ := c.Get(contextKeyFlasher).(*Flasher)
	id := VisitorID(c)
	if f == nil || id == "" {
		Now(c, kind, text)
		return
	}
	if err := f.store.Push(c.Request().Context(), id, Message{Kind: kind, Text: text}); err != nil {
		slog.Warn("queueing flash message failed", slog.Any("error", err))
		Now(c, kind, text)
	}
}
