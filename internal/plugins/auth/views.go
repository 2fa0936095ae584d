package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/huabuyu/geoai/internal/templates/layouts"
)

// LoginPage renders the sign-in form, keeping the submitted email.
func LoginPage(form LoginRequest) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="card auth"><h1>Welcome back</h1><p class="muted">Sign in to track your brand across AI search.</p>`).
			Raw(`<form method="post" action="/login">`)
		layouts.CSRFField(ctx, h)
		h.Raw(`<label for="email">Email</label><input id="email" name="email" type="email" autocomplete="email" required value="`).
			Text(form.Email).
			Raw(`"><label for="password">Password</label><input id="password" name="password" type="password" autocomplete="current-password" required>`).
			Raw(`<button class="btn primary" type="submit">Sign in</button></form>`).
			Raw(`<p class="muted">No account yet? <a href="/signup">Sign up</a></p></section>`)
		return h.Err()
	})
	return layouts.Base("Sign in", body)
}

// SignupPage renders the sign-up form, keeping name and email.
func SignupPage(form SignupRequest) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="card auth"><h1>Create your account</h1>`).
			Raw(`<form method="post" action="/signup">`)
		layouts.CSRFField(ctx, h)
		h.Raw(`<label for="name">Name</label><input id="name" name="name" type="text" autocomplete="name" value="`).
			Text(form.Name).
			Raw(`"><label for="email">Email</label><input id="email" name="email" type="email" autocomplete="email" required value="`).
			Text(form.Email).
			Raw(`"><label for="password">Password</label><input id="password" name="password" type="password" autocomplete="new-password" minlength="8" required>`).
			Raw(`<label for="confirm">Confirm password</label><input id="confirm" name="confirm" type="password" autocomplete="new-password" required>`).
			Raw(`<button class="btn primary" type="submit">Sign up</button></form>`).
			Raw(`<p class="muted">Already registered? <a href="/login">Sign in</a></p></section>`)
		return h.Err()
	})
	return layouts.Base("Sign up", body)
}

// VerifyEmailPage tells the user to check their inbox and offers a resend.
// spamHint adds the note for domains that tend to file the mail as junk.
func VerifyEmailPage(email string, spamHint bool) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="card auth"><h1>Verify your email</h1>`)
		if email != "" {
			h.Raw(`<p>We sent a verification link to <strong>`).Text(email).Raw(`</strong>.</p>`)
		} else {
			h.Raw(`<p>We sent you a verification link.</p>`)
		}
		h.Raw(`<p class="muted">Click the link in the email to activate your account.</p>`)
		if spamHint {
			h.Raw(`<p class="toast toast-warning">Outlook sometimes filters verification emails into spam/junk folders. `).
				Raw(`Please check there if you don't see our email in your inbox.</p>`)
		}
		h.Raw(`<form method="post" action="/verify-email/resend">`)
		layouts.CSRFField(ctx, h)
		h.Raw(`<label for="email">Email</label><input id="email" name="email" type="email" required value="`).
			Text(email).
			Raw(`"><button class="btn" type="submit">Resend verification email</button></form>`).
			Raw(`<p class="muted"><a href="/login">Back to sign in</a></p></section>`)
		return h.Err()
	})
	return layouts.Base("Verify email", body)
}
