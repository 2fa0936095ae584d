package marketing

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/huabuyu/geoai/internal/fixtures"
	"github.com/huabuyu/geoai/internal/templates/layouts"
)

// HomeView is everything the landing page shows.
type HomeView struct {
	Stats    []fixtures.Metric
	Trend    []fixtures.TrendPoint
	Features []fixtures.Feature
	Plans    []fixtures.PricingPlan
}

var topicLabels = map[string]string{
	TopicSales:       "Sales",
	TopicSupport:     "Support",
	TopicPartnership: "Partnership",
}

func public(title string, fn func(ctx context.Context, h *layouts.HTML)) templ.Component {
	return layouts.Base(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		fn(ctx, h)
		return h.Err()
	}))
}

// HomePage renders the landing page.
func HomePage(v HomeView) templ.Component {
	return public("AI Brand Visibility", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<section class="hero"><h1>See how AI search talks about your brand</h1>`).
			Raw(`<p class="muted">Track mentions, sentiment and rankings across ChatGPT, Perplexity and DeepSeek, then optimize your content to be cited.</p>`).
			Raw(`<p><a class="btn primary" href="/signup">Start free trial</a> <a class="btn" href="/demo">Book a demo</a></p></section>`)

		h.Raw(`<section class="card"><h2>Visibility this year</h2><table class="trend"><tbody>`)
		for _, p := range v.Trend {
			h.Raw(`<tr><td>`).Text(p.Label).Raw(`</td><td><span class="bar" style="width:`).Textf("%d", clamp(p.Score)).
				Raw(`%"></span></td><td>`).Textf("%d", p.Score).Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table><div class="grid">`)
		for _, s := range v.Stats {
			h.Raw(`<div class="card"><p class="muted">`).Text(s.Title).Raw(`</p><h2>`).Text(s.Value).
				Raw(`</h2><p class="up">`).Text(s.Change).Raw(`</p></div>`)
		}
		h.Raw(`</div></section>`)

		h.Raw(`<section id="features"><h2>Core features</h2><div class="grid">`)
		for _, f := range v.Features {
			h.Raw(`<div class="card"><h3>`).Text(f.Title).Raw(`</h3><p>`).Text(f.Description).Raw(`</p></div>`)
		}
		h.Raw(`</div></section>`)

		h.Raw(`<section id="pricing"><h2>Pricing</h2><div class="grid">`)
		for _, p := range v.Plans {
			h.Raw(`<div class="card`)
			if p.Highlight {
				h.Raw(` highlight`)
			}
			h.Raw(`"><h3>`).Text(p.Name).Raw(`</h3><p class="price">$`).Text(p.Price).Raw(`<span class="muted">/month</span></p><p class="muted">`).
				Text(p.Description).Raw(`</p><ul>`)
			for _, f := range p.Features {
				h.Raw(`<li>`).Text(f).Raw(`</li>`)
			}
			h.Raw(`</ul><a class="btn primary" href="`).URL(planLink(p)).Raw(`">`).Text(p.CTAText).Raw(`</a></div>`)
		}
		h.Raw(`</div></section>`)
	})
}

func planLink(p fixtures.PricingPlan) string {
	if strings.EqualFold(p.CTAText, "Contact Sales") {
		return "/contact?topic=" + TopicSales
	}
	return "/signup"
}

func clamp(n int) int {
	return min(max(n, 0), 100)
}

// ContactPage renders the contact form with topic tabs, keeping what was
// submitted.
func ContactPage(form ContactRequest) templ.Component {
	return public("Contact", func(ctx context.Context, h *layouts.HTML) {
		topic := form.Topic
		if _, ok := topicLabels[topic]; !ok {
			topic = TopicSales
		}

		h.Raw(`<section class="card"><h1>Contact us</h1><nav class="tabs">`)
		for _, t := range Topics {
			h.Raw(`<a class="btn`)
			if t == topic {
				h.Raw(` primary`)
			}
			h.Raw(`" href="`).URL("/contact?topic="+t).Raw(`">`).Text(topicLabels[t]).Raw(`</a> `)
		}
		h.Raw(`</nav><form method="post" action="/contact">`)
		layouts.CSRFField(ctx, h)
		h.Raw(`<input type="hidden" name="topic" value="`).Text(topic).Raw(`">`)
		input(h, "name", "Name", "text", form.Name, true)
		input(h, "email", "Email", "email", form.Email, true)
		input(h, "company", "Company", "text", form.Company, false)
		input(h, "subject", "Subject", "text", form.Subject, true)
		h.Raw(`<label for="message">Message</label><textarea id="message" name="message" rows="5" required>`).
			Text(form.Message).Raw(`</textarea><button class="btn primary" type="submit">Send message</button></form></section>`)
	})
}

// DemoPage renders the demo scheduling form, keeping what was submitted.
func DemoPage(form DemoRequest) templ.Component {
	return public("Book a Demo", func(ctx context.Context, h *layouts.HTML) {
		h.Raw(`<section class="card"><h1>Book a demo</h1><p class="muted">Pick a date and we will walk you through your brand's AI visibility.</p>`).
			Raw(`<form method="post" action="/demo">`)
		layouts.CSRFField(ctx, h)
		input(h, "name", "Name", "text", form.Name, true)
		input(h, "email", "Email", "email", form.Email, true)
		input(h, "company", "Company", "text", form.Company, true)
		input(h, "phone", "Phone", "tel", form.Phone, false)
		input(h, "date", "Preferred date", "date", form.Date, true)
		input(h, "timezone", "Timezone", "text", form.Timezone, false)
		h.Raw(`<label for="message">Anything we should know?</label><textarea id="message" name="message" rows="4">`).
			Text(form.Message).Raw(`</textarea><button class="btn primary" type="submit">Schedule demo</button></form></section>`)
	})
}

func input(h *layouts.HTML, name, label, typ, value string, required bool) {
	h.Raw(`<label for="`).Text(name).Raw(`">`).Text(label).Raw(`</label><input id="`).Text(name).
		Raw(`" name="`).Text(name).Raw(`" type="`).Text(typ).Raw(`" value="`).Text(value).Raw(`"`)
	if required {
		h.Raw(` required`)
	}
	h.Raw(`>`)
}
