package layouts

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// NavItem is one link in the public header or the dashboard sidebar.
type NavItem struct {
	Label string
	Href  string
}

// PublicNav is the marketing header.
var PublicNav = []NavItem{
	{Label: "Features", Href: "/#features"},
	{Label: "Pricing", Href: "/#pricing"},
	{Label: "Contact", Href: "/contact"},
	{Label: "Book a Demo", Href: "/demo"},
}

// AppNav is the dashboard sidebar.
var AppNav = []NavItem{
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "Projects", Href: "/projects"},
	{Label: "Scan Results", Href: "/scan-results"},
	{Label: "Reports", Href: "/reports"},
	{Label: "Optimization", Href: "/optimization"},
}

// Base is the document shell for public pages: header, toasts, content and
// footer. The header shows sign-in links or a dashboard link depending on
// the session.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		head(h, title)
		h.Raw(`<body class="public">`)
		publicHeader(ctx, h)
		toasts(ctx, h)
		h.Raw(`<main class="container">`).Component(ctx, content).Raw(`</main>`)
		footer(ctx, h)
		h.Raw(`</body></html>`)
		return h.Err()
	})
}

// App is the document shell for gated pages: sidebar navigation, a header
// with the signed-in user and a sign-out button.
func App(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		head(h, title)
		h.Raw(`<body class="app"><aside class="sidebar"><a class="brand" href="/">GEO AI</a><nav><ul>`)
		active := GetActivePath(ctx)
		for _, item := range AppNav {
			h.Raw(`<li><a href="`).URL(item.Href).Raw(`"`)
			if isActive(active, item.Href) {
				h.Raw(` class="active" aria-current="page"`)
			}
			h.Raw(`>`).Text(item.Label).Raw(`</a></li>`)
		}
		h.Raw(`</ul></nav></aside><div class="app-main"><header class="app-header"><span class="user">`).
			Text(GetUserName(ctx)).
			Raw(`</span>`)
		logoutForm(ctx, h)
		h.Raw(`</header>`)
		toasts(ctx, h)
		h.Raw(`<main>`).Component(ctx, content).Raw(`</main></div></body></html>`)
		return h.Err()
	})
}

func head(h *HTML, title string) {
	h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`).
		Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
		Raw(`<title>`).Text(title).Raw(` | GEO AI</title>`).
		Raw(`<link rel="stylesheet" href="/static/css/app.css"></head>`)
}

func publicHeader(ctx context.Context, h *HTML) {
	h.Raw(`<header class="site-header"><a class="brand" href="/">GEO AI</a><nav><ul>`)
	for _, item := range PublicNav {
		h.Raw(`<li><a href="`).URL(item.Href).Raw(`">`).Text(item.Label).Raw(`</a></li>`)
	}
	h.Raw(`</ul></nav><div class="session">`)
	if IsAuthenticated(ctx) {
		h.Raw(`<a class="btn" href="/dashboard">Dashboard</a>`)
		logoutForm(ctx, h)
	} else {
		h.Raw(`<a href="/login">Log in</a><a class="btn primary" href="/signup">Sign up</a>`)
	}
	h.Raw(`</div></header>`)
}

func logoutForm(ctx context.Context, h *HTML) {
	h.Raw(`<form method="post" action="/logout" class="inline">`)
	CSRFField(ctx, h)
	h.Raw(`<button type="submit" class="link">Log out</button></form>`)
}

func toasts(ctx context.Context, h *HTML) {
	list := GetToasts(ctx)
	if len(list) == 0 {
		return
	}
	h.Raw(`<div class="toasts" role="status">`)
	for _, t := range list {
		h.Raw(`<div class="toast toast-`).Text(t.Kind).Raw(`">`).Text(t.Text).Raw(`</div>`)
	}
	h.Raw(`</div>`)
}

func footer(ctx context.Context, h *HTML) {
	h.Raw(`<footer class="site-footer"><p>&copy; GEO AI. Brand visibility for the AI search era.</p>`)
	if mode := GetBackendMode(ctx); mode == "stub" {
		h.Raw(`<p class="badge">Demo mode</p>`)
	}
	h.Raw(`</footer>`)
}

// isActive matches exact paths and sub-paths ("/projects" for "/projects/x").
func isActive(active, href string) bool {
	return active == href || strings.HasPrefix(active, href+"/")
}
