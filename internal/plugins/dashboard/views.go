package dashboard

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/templates/layouts"
)

// OverviewPage renders the dashboard.
func OverviewPage(v OverviewView) templ.Component {
	return page("Dashboard", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<h1>Welcome back, `).Text(v.UserName).Raw(`</h1>`)

		if len(v.Projects) > 0 {
			h.Raw(`<form method="get" action="/dashboard" class="inline"><label for="project">Project</label><select id="project" name="project">`)
			for _, p := range v.Projects {
				option(h, p.ID, p.Name, v.Active != nil && v.Active.ID == p.ID)
			}
			h.Raw(`</select><button class="btn" type="submit">Show</button></form>`)
		} else {
			h.Raw(`<p class="muted">No projects yet. <a href="/projects">Create your first project</a>.</p>`)
		}

		if v.Active != nil {
			h.Raw(`<section class="card"><h2>`).Text(v.Active.Name).Raw(`</h2><p class="muted">`).
				Text(v.Active.Domain).Raw(`</p><p>Visibility score</p>`)
			scoreBar(h, v.Active.VisibilityScore)
			h.Raw(`</section>`)
		}

		h.Raw(`<div class="grid">`)
		for _, m := range v.Metrics {
			h.Raw(`<div class="card"><p class="muted">`).Text(m.Title).Raw(`</p><h2>`).Text(m.Value).
				Raw(`</h2><p class="`).Text(m.Trend).Raw(`">`).Text(m.Change).Raw(`</p><p class="muted">`).
				Text(m.Description).Raw(`</p></div>`)
		}
		h.Raw(`</div>`)

		h.Raw(`<section class="card"><h2>Visibility trend</h2><table><thead><tr><th>Day</th><th>Score</th></tr></thead><tbody>`)
		for _, p := range v.Trend {
			h.Raw(`<tr><td>`).Text(p.Label).Raw(`</td><td>`)
			scoreBar(h, p.Score)
			h.Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table></section>`)

		h.Raw(`<section class="card"><h2>Keyword performance</h2>`)
		keywordTable(h, v.Keywords)
		h.Raw(`<p class="muted">`).Textf("%d optimizations generated", v.Optimizations).Raw(`</p></section>`)
	})
}

// ProjectsPage renders the project table with the create or edit form.
func ProjectsPage(v ProjectsView) templ.Component {
	return page("Projects", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<h1>Projects</h1>`)

		if len(v.Projects) == 0 {
			h.Raw(`<p class="empty muted">No projects yet.</p>`)
		} else {
			h.Raw(`<table><thead><tr><th>Name</th><th>Domain</th><th>Visibility</th><th>Created</th><th></th></tr></thead><tbody>`)
			for _, p := range v.Projects {
				h.Raw(`<tr><td>`).Text(p.Name).Raw(`</td><td>`).Text(p.Domain).Raw(`</td><td>`).
					Text(strconv.Itoa(p.VisibilityScore)).Raw(`</td><td>`).Text(p.CreatedAt).Raw(`</td><td>`).
					Raw(`<a class="btn" href="`).URL("/projects?edit="+url.QueryEscape(p.ID)).Raw(`">Edit</a> `).
					Raw(`<form method="post" class="inline" action="`).URL("/projects/"+url.PathEscape(p.ID)+"/delete").Raw(`">`)
				layouts.CSRFField(ctx, h)
				h.Raw(`<button class="btn danger" type="submit">Delete</button></form></td></tr>`)
			}
			h.Raw(`</tbody></table>`)
		}

		if v.Editing != nil {
			projectForm(ctx, h, "Edit project", "/projects/"+url.PathEscape(v.Editing.ID), *v.Editing, "Save changes")
			h.Raw(`<p><a href="/projects">Cancel</a></p>`)
		} else {
			projectForm(ctx, h, "New project", "/projects", fixtures.Project{}, "Create project")
		}
	})
}

// ScanResultsPage renders one project's scan.
func ScanResultsPage(v ScanView) templ.Component {
	return page("Scan Results", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<h1>Scan Results</h1><nav class="tabs">`)
		for _, s := range v.Scans {
			h.Raw(`<a class="btn`)
			if s.ProjectID == v.Selected {
				h.Raw(` primary`)
			}
			h.Raw(`" href="`).URL("/scan-results?project="+url.QueryEscape(s.ProjectID)).Raw(`">`).Text(s.ProjectName).Raw(`</a> `)
		}
		h.Raw(`</nav>`)

		s := v.Current
		if s == nil {
			h.Raw(`<p class="empty muted">No scan results for this project yet.</p>`)
			return
		}

		h.Raw(`<p class="muted">Scanned `).Text(s.Date).Raw(` across `).Textf("%d", len(s.Models)).Raw(` AI models</p>`)
		h.Raw(`<div class="grid"><div class="card"><p class="muted">Mention rate</p><h2>`).Textf("%d%%", s.MentionRate).
			Raw(`</h2></div><div class="card"><p class="muted">Sentiment score</p><h2>`).Textf("%d", s.SentimentScore).
			Raw(`</h2></div></div>`)

		h.Raw(`<section class="card"><h2>Model comparison</h2><table><thead><tr><th>Model</th><th>Mention rate</th><th>Sentiment</th></tr></thead><tbody>`)
		for _, m := range s.ModelComparison {
			h.Raw(`<tr><td>`).Text(m.Name).Raw(`</td><td>`).Textf("%d%%", m.MentionRate).Raw(`</td><td>`).
				Textf("%d", m.SentimentScore).Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table></section>`)

		h.Raw(`<section class="card"><h2>Keyword ranking</h2>`)
		keywordTable(h, s.KeywordRanking)
		h.Raw(`</section>`)

		h.Raw(`<section class="card"><h2>Competitor analysis</h2><table><tbody>`)
		for _, comp := range s.Competitors {
			h.Raw(`<tr><td>`).Text(comp.Name).Raw(`</td><td>`)
			scoreBar(h, comp.Score)
			h.Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table></section>`)
	})
}

// ReportsPage renders the report list and the selected report.
func ReportsPage(v ReportsView) templ.Component {
	return page("Reports", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<h1>Reports</h1><ul class="list">`)
		for _, r := range v.Reports {
			h.Raw(`<li><a href="`).URL("/reports?report="+url.QueryEscape(r.ID)).Raw(`"`)
			if v.Current != nil && v.Current.ID == r.ID {
				h.Raw(` class="active"`)
			}
			h.Raw(`>`).Text(r.Title).Raw(`</a> <span class="muted">`).Text(r.ProjectName).Raw(` &middot; `).
				Text(r.Date).Raw(`</span></li>`)
		}
		h.Raw(`</ul>`)

		r := v.Current
		if r == nil {
			h.Raw(`<p class="empty muted">No reports yet.</p>`)
			return
		}

		h.Raw(`<section class="card"><h2>`).Text(r.Title).Raw(`</h2><p class="badge">`).Text(r.Type).Raw(`</p>`).
			Raw(`<table><thead><tr><th>Month</th><th>Visibility</th><th>Mentions</th><th>Sentiment</th></tr></thead><tbody>`)
		for _, p := range r.TrendData {
			h.Raw(`<tr><td>`).Text(p.Month).Raw(`</td><td>`).Textf("%d", p.Visibility).Raw(`</td><td>`).
				Textf("%d", p.Mentions).Raw(`</td><td>`).Textf("%d", p.Sentiment).Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table><h3>Summary</h3><p>`).Text(r.Summary).Raw(`</p></section>`)
	})
}

// OptimizationPage renders the generator form, the list and the selected item.
func OptimizationPage(v OptimizationView) templ.Component {
	return page("Optimization", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<h1>Content Optimization</h1><section class="card"><h2>Generate content</h2>`).
			Raw(`<form method="post" action="/optimization/generate">`)
		layouts.CSRFField(ctx, h)
		h.Raw(`<label for="project_id">Project</label><select id="project_id" name="project_id">`)
		for _, p := range v.Projects {
			option(h, p.ID, p.Name, false)
		}
		h.Raw(`</select><label for="type">Type</label><select id="type" name="type">`)
		for _, t := range v.Types {
			option(h, string(t), t.Label(), false)
		}
		h.Raw(`</select><label for="keywords">Keywords</label><input id="keywords" name="keywords" type="text" placeholder="e.g. cloud storage, data backup">`).
			Raw(`<button class="btn primary" type="submit">Generate</button></form></section>`)

		h.Raw(`<ul class="list">`)
		for _, o := range v.Optimizations {
			h.Raw(`<li><a href="`).URL("/optimization?id="+url.QueryEscape(o.ID)).Raw(`"`)
			if v.Current != nil && v.Current.ID == o.ID {
				h.Raw(` class="active"`)
			}
			h.Raw(`>`).Text(o.Title).Raw(`</a> <span class="badge">`).Text(o.Type.Label()).Raw(`</span> <span class="muted">`).
				Text(o.Date).Raw(`</span></li>`)
		}
		h.Raw(`</ul>`)

		if v.Current != nil {
			optimizationDetail(h, *v.Current)
		}
	})
}

// --- pieces ---

// page wraps a body in the dashboard layout.
func page(title string, body func(ctx context.Context, h *layouts.HTML)) templ.Component {
	return layouts.App(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		body(ctx, h)
		return h.Err()
	}))
}

func option(h *layouts.HTML, value, label string, selected bool) {
	h.Raw(`<option value="`).Text(value).Raw(`"`)
	if selected {
		h.Raw(` selected`)
	}
	h.Raw(`>`).Text(label).Raw(`</option>`)
}

// scoreBar draws a 0-100 score as a filled bar.
func scoreBar(h *layouts.HTML, score int) {
	score = max(0, min(100, score))
	h.Raw(`<div class="bar" title="`).Textf("%d", score).Raw(`"><span style="width:`).Textf("%d%%", score).Raw(`"></span></div>`)
}

func keywordTable(h *layouts.HTML, rows []fixtures.KeywordPerformance) {
	h.Raw(`<table><thead><tr><th>Keyword</th><th>Visibility</th><th>Trend</th></tr></thead><tbody>`)
	for _, k := range rows {
		arrow := "&uarr;"
		if k.Trend == fixtures.TrendDown {
			arrow = "&darr;"
		}
		h.Raw(`<tr><td>`).Text(k.Name).Raw(`</td><td>`).Textf("%d%%", k.Visibility).Raw(`</td><td class="`).
			Text(k.Trend).Raw(`">`).Raw(arrow).Raw(`</td></tr>`)
	}
	h.Raw(`</tbody></table>`)
}

func projectForm(ctx context.Context, h *layouts.HTML, title, action string, p fixtures.Project, submit string) {
	h.Raw(`<section class="card"><h2>`).Text(title).Raw(`</h2><form method="post" action="`).URL(action).Raw(`">`)
	layouts.CSRFField(ctx, h)
	h.Raw(`<label for="name">Name</label><input id="name" name="name" type="text" required value="`).Text(p.Name).
		Raw(`"><label for="domain">Domain</label><input id="domain" name="domain" type="text" required placeholder="example.com" value="`).
		Text(p.Domain).Raw(`"><button class="btn primary" type="submit">`).Text(submit).Raw(`</button></form></section>`)
}

func optimizationDetail(h *layouts.HTML, o fixtures.Optimization) {
	h.Raw(`<section class="card"><h2>`).Text(o.Title).Raw(`</h2>`)
	switch {
	case len(o.FAQ) > 0:
		for _, f := range o.FAQ {
			h.Raw(`<h3>`).Text(f.Question).Raw(`</h3><p>`).Text(f.Answer).Raw(`</p>`)
		}
	case o.Page != nil:
		h.Raw(`<p><strong>Title:</strong> `).Text(o.Page.Title).Raw(`</p><p><strong>Meta description:</strong> `).
			Text(o.Page.MetaDescription).Raw(`</p><p><strong>Keywords:</strong> `).Text(o.Page.Keywords).
			Raw(`</p><h3>Recommendations</h3><ul>`)
		for _, r := range o.Page.Recommendations {
			h.Raw(`<li>`).Text(r).Raw(`</li>`)
		}
		h.Raw(`</ul>`)
	default:
		h.Raw(`<pre><code>`).Text(o.Code).Raw(`</code></pre>`)
	}
	h.Raw(`</section>`)
}
