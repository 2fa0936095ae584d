package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup to an io.Writer, escaping dynamic values and keeping
// the first write error so components can chain calls and check once.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup as-is.
func (h *HTML) Raw(s string) *HTML {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

// Text writes s HTML-escaped. Safe in element bodies and quoted attributes.
func (h *HTML) Text(s string) *HTML {
	return h.Raw(templ.EscapeString(s))
}

// Textf formats and escapes.
func (h *HTML) Textf(format string, args ...any) *HTML {
	return h.Text(fmt.Sprintf(format, args...))
}

// URL writes a sanitized, escaped URL for href/action attributes.
func (h *HTML) URL(u string) *HTML {
	return h.Text(string(templ.URL(u)))
}

// Component renders a nested component in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) *HTML {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
	return h
}

// Err returns the first error encountered.
func (h *HTML) Err() error {
	return h.err
}

// CSRFField renders the hidden token input every form must carry.
func CSRFField(ctx context.Context, h *HTML) *HTML {
	return h.Raw(`<input type="hidden" name="csrf_token" value="`).Text(GetCSRFToken(ctx)).Raw(`">`)
}
