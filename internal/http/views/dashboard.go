package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func AdminDashboardPage(data viewmodels.AdminDashboardViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, "Dashboard")

		hw.raw(`<section class="stat-grid">`)
		writeStatCard(hw, "Assets", FormatInt64(data.TotalAssets), "/admin/assets")
		writeStatCard(hw, "Users", FormatInt64(data.TotalUsers), "/admin/users")
		writeStatCard(hw, "Pending requests", FormatInt64(data.PendingRequests), "/admin/deletion-requests")
		hw.raw(`</section>`)

		writeStatusBreakdown(hw, data.StatusCounts)
		writeRecentRequests(hw, "Latest deletion requests", data.RecentRequests, "/admin/deletion-requests")

		closeLayout(hw)
	})
}

func UserHomePage(data viewmodels.UserHomeViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, "Overview")

		hw.raw(`<section class="stat-grid">`)
		writeStatCard(hw, "My assets", FormatInt64(data.TotalAssets), "/user/assets")
		hw.raw(`</section>`)

		writeStatusBreakdown(hw, data.StatusCounts)
		writeRecentRequests(hw, "My deletion requests", data.RecentRequests, "")

		hw.raw(`<p><a class="btn-primary" href="/user/assets/new">Register an asset</a></p>`)

		closeLayout(hw)
	})
}

func writeStatCard(hw *htmlWriter, label, value, href string) {
	hw.raw(`<article class="stat-card">`)
	hw.raw(`<span class="stat-value">`)
	hw.text(value)
	hw.raw(`</span><span class="stat-label">`)
	hw.text(label)
	hw.raw(`</span>`)
	if href != "" {
		hw.raw(`<a class="stat-link"`)
		hw.attr("href", href)
		hw.raw(`>View</a>`)
	}
	hw.raw(`</article>`)
}

func writeStatusBreakdown(hw *htmlWriter, counts []viewmodels.StatusCount) {
	hw.raw(`<section class="panel"><h2>By status</h2>`)
	hw.raw(`<table class="data-table"><tbody>`)
	for _, sc := range counts {
		hw.raw(`<tr><td><span`)
		hw.attr("class", "badge "+sc.BadgeClass)
		hw.raw(`>`)
		hw.text(sc.Label)
		hw.raw(`</span></td><td class="num">`)
		hw.text(FormatInt64(sc.Count))
		hw.raw(`</td></tr>`)
	}
	hw.raw(`</tbody></table></section>`)
}

// writeRecentRequests is the read-only flavor used on the dashboards. The
// review queue with its approve and reject forms lives on its own page.
func writeRecentRequests(hw *htmlWriter, heading string, items []viewmodels.DeletionRequestItem, moreHref string) {
	hw.raw(`<section class="panel"><h2>`)
	hw.text(heading)
	hw.raw(`</h2>`)
	if len(items) == 0 {
		hw.raw(`<p class="empty">Nothing yet.</p></section>`)
		return
	}
	hw.raw(`<table class="data-table"><thead><tr>`)
	hw.raw(`<th>Asset</th><th>Requested by</th><th>Status</th><th>Filed</th>`)
	hw.raw(`</tr></thead><tbody>`)
	for _, it := range items {
		hw.raw(`<tr><td>`)
		hw.text(it.AssetName)
		if it.AssetGone {
			hw.raw(` <span class="badge badge-outline">removed</span>`)
		}
		hw.raw(`</td><td>`)
		hw.text(it.RequesterEmail)
		hw.raw(`</td><td><span`)
		hw.attr("class", "badge "+it.BadgeClass)
		hw.raw(`>`)
		hw.text(it.StatusLabel)
		hw.raw(`</span></td><td>`)
		hw.text(it.CreatedAt)
		hw.raw(`</td></tr>`)
	}
	hw.raw(`</tbody></table>`)
	if moreHref != "" {
		hw.raw(`<p><a`)
		hw.attr("href", moreHref)
		hw.raw(`>All requests</a></p>`)
	}
	hw.raw(`</section>`)
}
