// Package pages holds the standalone pages that do not belong to a plugin:
// the generic error page, the catch-all "Empty" page and the recovery
// screen.
package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/huabuyu/geoai/internal/templates/layouts"
)

// ErrorPage renders an HTTP error inside the public layout.
func ErrorPage(code int, message string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="empty"><h1>`).Text(strconv.Itoa(code)).Raw(`</h1><p class="muted">`).
			Text(message).
			Raw(`</p><a class="btn primary" href="/">Back to home</a></section>`)
		return h.Err()
	})
	return layouts.Base("Error", body)
}

// NotFound is the catch-all page for unknown paths.
func NotFound() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="empty"><h1>Empty</h1><p class="muted">There is nothing here yet.</p>`)
		if layouts.IsAuthenticated(ctx) {
			h.Raw(`<a class="btn primary" href="/dashboard">Go to dashboard</a>`)
		} else {
			h.Raw(`<a class="btn primary" href="/">Back to home</a>`)
		}
		h.Raw(`</section>`)
		return h.Err()
	})
	return layouts.Base("Not Found", body)
}

// Recovery is the screen shown after a panic. It is deliberately
// self-contained: no layout data, no session, no toasts.
func Recovery() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Something went wrong | GEO AI</title>`).
			Raw(`<link rel="stylesheet" href="/static/css/app.css"></head><body>`).
			Raw(`<section class="empty"><h1>Something went wrong</h1>`).
			Raw(`<p class="muted">An unexpected error occurred. Reloading the page usually fixes it.</p>`).
			Raw(`<a class="btn primary" href="">Refresh Page</a></section></body></html>`)
		return h.Err()
	})
}
