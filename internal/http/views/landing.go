package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func LandingPage(data viewmodels.LandingViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)

		hw.raw(`<section class="hero">`)
		hw.raw(`<h1>Know where your hardware is.</h1>`)
		hw.raw(`<p>AssetDesk keeps a register of laptops, monitors and everything else your teams carry. Register what you hold, and retire it through an approval trail instead of a shrug.</p>`)
		hw.raw(`<div class="hero-actions">`)
		switch {
		case data.Layout.IsAdmin:
			hw.raw(`<a class="btn-primary" href="/admin">Open the dashboard</a>`)
		case data.Layout.SignedIn:
			hw.raw(`<a class="btn-primary" href="/user/assets">My assets</a>`)
		default:
			hw.raw(`<a class="btn-primary" href="/login">Sign in</a>`)
		}
		hw.raw(`</div>`)
		hw.raw(`</section>`)

		hw.raw(`<section class="feature-grid">`)
		writeFeatureCard(hw, "One register", "Every asset has a tag, an owner and a status. No more spreadsheets that disagree with each other.")
		writeFeatureCard(hw, "Deletion with a paper trail", "Nothing leaves the register silently. Owners file a request, admins decide, the decision is kept.")
		writeFeatureCard(hw, "Departments and categories", "Slice the register the way your org is actually shaped.")
		hw.raw(`</section>`)

		closeLayout(hw)
	})
}

func writeFeatureCard(hw *htmlWriter, title, body string) {
	hw.raw(`<article class="feature-card"><h2>`)
	hw.text(title)
	hw.raw(`</h2><p>`)
	hw.text(body)
	hw.raw(`</p></article>`)
}
