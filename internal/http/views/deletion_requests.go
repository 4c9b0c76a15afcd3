package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func DeletionRequestsPage(data viewmodels.DeletionRequestsViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, "Deletion requests")

		hw.raw(`<div class="toolbar">`)
		hw.raw(`<form method="get" action="/admin/deletion-requests" class="filter-form">`)
		writeStatusSelect(hw, "status", data.StatusOptions, "All (pending first)")
		hw.raw(`<button type="submit" class="btn-secondary">Filter</button>`)
		hw.raw(`</form></div>`)

		if !data.HasRequests {
			hw.raw(`<p class="empty">No requests match.</p>`)
			closeLayout(hw)
			return
		}

		hw.raw(`<table class="data-table"><thead><tr>`)
		hw.raw(`<th>Asset</th><th>Requested by</th><th>Reason</th><th>Status</th><th>Filed</th><th>Decision</th>`)
		hw.raw(`</tr></thead><tbody>`)
		for _, req := range data.Requests {
			writeDeletionRequestRow(hw, data.Layout.CSRFToken, req)
		}
		hw.raw(`</tbody></table>`)

		writePagination(hw, "/admin/deletion-requests", "", data.StatusFilter,
			data.Page, data.TotalPages, data.TotalCount, data.ShowingFrom, data.ShowingTo)

		closeLayout(hw)
	})
}

func writeDeletionRequestRow(hw *htmlWriter, csrfToken string, req viewmodels.DeletionRequestItem) {
	hw.raw(`<tr><td>`)
	hw.text(req.AssetName)
	hw.raw(` <code`)
	hw.attr("title", req.AssetTag)
	hw.raw(`>`)
	hw.text(ShortIdentifier(req.AssetTag))
	hw.raw(`</code>`)
	if req.AssetGone {
		hw.raw(` <span class="badge badge-outline" title="The asset is no longer in the register">removed</span>`)
	}
	hw.raw(`</td><td>`)
	hw.text(req.RequesterEmail)
	hw.raw(`</td><td class="reason-col">`)
	hw.text(req.Reason)
	hw.raw(`</td><td><span`)
	hw.attr("class", "badge "+req.BadgeClass)
	hw.raw(`>`)
	hw.text(req.StatusLabel)
	hw.raw(`</span></td><td>`)
	hw.text(req.CreatedAt)
	hw.raw(`</td><td>`)

	if req.IsPending {
		// One shared note input; the buttons pick the route.
		approvePath := "/admin/deletion-requests/" + FormatInt64(req.ID) + "/approve"
		rejectPath := "/admin/deletion-requests/" + FormatInt64(req.ID) + "/reject"
		hw.raw(`<form method="post"`)
		hw.attr("action", approvePath)
		hw.raw(` class="decision-form">`)
		csrfField(hw, csrfToken)
		hw.raw(`<input type="text" name="note" placeholder="Note (optional)" maxlength="500"/>`)
		hw.raw(`<button type="submit" class="btn-sm-primary"`)
		hw.attr("formaction", approvePath)
		hw.raw(`>Approve</button>`)
		hw.raw(`<button type="submit" class="btn-sm-secondary"`)
		hw.attr("formaction", rejectPath)
		hw.raw(`>Reject</button>`)
		hw.raw(`</form>`)
	} else {
		hw.text(req.DeciderEmail)
		if req.DecidedAt != "" && req.DecidedAt != "—" {
			hw.raw(` <span class="muted">`)
			hw.text(req.DecidedAt)
			hw.raw(`</span>`)
		}
		if req.DecisionNote != "" {
			hw.raw(`<p class="decision-note">`)
			hw.text(req.DecisionNote)
			hw.raw(`</p>`)
		}
	}
	hw.raw(`</td></tr>`)
}
