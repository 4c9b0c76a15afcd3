package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

// openAuthLayout is the minimal shell for the pre-auth pages. No nav, no
// boost headers; the forms carry their token in a hidden field.
func openAuthLayout(hw *htmlWriter, title string, toast *viewmodels.ToastViewData) {
	hw.raw("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	hw.raw("<meta charset=\"utf-8\"/>\n")
	hw.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	hw.raw("<title>")
	hw.text(title)
	hw.raw(" · AssetDesk</title>\n")
	hw.raw("<link rel=\"stylesheet\" href=\"/static/app.css\"/>\n")
	hw.raw("</head>\n<body class=\"auth\">\n")
	writeToast(hw, toast)
	hw.raw("<main class=\"auth-card\">\n")
}

func closeAuthLayout(hw *htmlWriter) {
	hw.raw("\n</main>\n</body>\n</html>\n")
}

func LoginPage(data viewmodels.LoginViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openAuthLayout(hw, "Sign in", data.Toast)
		hw.raw(`<h1 class="auth-title">AssetDesk</h1>`)
		hw.raw("\n")

		if data.SetupRequired {
			hw.raw(`<div class="alert" role="status">No accounts exist yet. Create the first admin with <code>assetdesk users bootstrap-admin</code>, then sign in here.</div>`)
			closeAuthLayout(hw)
			return
		}

		if data.ErrorMessage != "" {
			hw.raw(`<div class="alert alert-destructive" role="alert">`)
			hw.text(data.ErrorMessage)
			hw.raw("</div>\n")
		}

		hw.raw(`<form method="post" action="/login">`)
		csrfField(hw, data.CSRFToken)
		if data.Next != "" {
			hw.raw(`<input type="hidden" name="next"`)
			hw.attr("value", data.Next)
			hw.raw(`/>`)
		}
		hw.raw(`<label for="email">Email</label>`)
		hw.raw(`<input id="email" type="email" name="email" autocomplete="username" required`)
		hw.attr("value", data.Email)
		hw.raw(`/>`)
		hw.raw(`<label for="password">Password</label>`)
		hw.raw(`<input id="password" type="password" name="password" autocomplete="current-password" required/>`)
		hw.raw(`<button type="submit" class="btn-primary">Sign in</button>`)
		hw.raw("</form>\n")
		closeAuthLayout(hw)
	})
}

func ResetPasswordPage(data viewmodels.ResetPasswordViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openAuthLayout(hw, "Reset password", data.Toast)
		hw.raw(`<h1 class="auth-title">Reset password</h1>`)
		hw.raw("\n")

		if !data.TokenValid {
			hw.raw(`<div class="alert alert-destructive" role="alert">`)
			hw.text(data.ErrorMessage)
			hw.raw("</div>\n")
			hw.raw(`<p><a href="/login">Back to sign in</a></p>`)
			closeAuthLayout(hw)
			return
		}

		if data.ErrorMessage != "" {
			hw.raw(`<div class="alert alert-destructive" role="alert">`)
			hw.text(data.ErrorMessage)
			hw.raw("</div>\n")
		}
		if data.SuccessMessage != "" {
			hw.raw(`<div class="alert" role="status">`)
			hw.text(data.SuccessMessage)
			hw.raw("</div>\n")
		}

		hw.raw(`<p class="auth-hint">Choose a new password for `)
		hw.raw(`<strong>`)
		hw.text(data.Email)
		hw.raw(`</strong>.</p>`)

		hw.raw(`<form method="post" action="/reset-password">`)
		csrfField(hw, data.CSRFToken)
		hw.raw(`<input type="hidden" name="token"`)
		hw.attr("value", data.Token)
		hw.raw(`/>`)
		hw.raw(`<label for="password">New password</label>`)
		hw.raw(`<input id="password" type="password" name="password" autocomplete="new-password" required/>`)
		hw.raw(`<label for="confirm_password">Confirm password</label>`)
		hw.raw(`<input id="confirm_password" type="password" name="confirm_password" autocomplete="new-password" required/>`)
		hw.raw(`<button type="submit" class="btn-primary">Set password</button>`)
		hw.raw("</form>\n")
		closeAuthLayout(hw)
	})
}
