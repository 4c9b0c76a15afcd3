package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func AssetsListPage(data viewmodels.AssetsListViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, data.Layout.Title)

		ownList := data.BasePath == "/user/assets"

		hw.raw(`<div class="toolbar">`)
		hw.raw(`<form method="get"`)
		hw.attr("action", data.BasePath)
		hw.raw(` class="filter-form">`)
		hw.raw(`<input type="search" name="q" placeholder="Search name, tag or serial"`)
		hw.attr("value", data.Query)
		hw.raw(`/>`)
		if len(data.StatusOptions) > 0 {
			writeStatusSelect(hw, "status", data.StatusOptions, "All statuses")
		}
		hw.raw(`<button type="submit" class="btn-secondary">Filter</button>`)
		hw.raw(`</form>`)
		if ownList {
			hw.raw(`<a class="btn-primary" href="/user/assets/new">Register an asset</a>`)
		}
		hw.raw(`</div>`)

		if !data.HasAssets {
			hw.raw(`<p class="empty">No assets match.</p>`)
			closeLayout(hw)
			return
		}

		if data.BulkDelete {
			hw.raw(`<form method="post" action="/admin/assets/bulk-delete">`)
			csrfField(hw, data.Layout.CSRFToken)
		}

		hw.raw(`<table class="data-table"><thead><tr>`)
		if data.BulkDelete {
			hw.raw(`<th class="select-col"></th>`)
		}
		hw.raw(`<th>Tag</th><th>Name</th><th>Serial</th><th>Status</th>`)
		if data.ShowOwner {
			hw.raw(`<th>Owner</th>`)
		}
		hw.raw(`<th>Department</th><th>Category</th><th>Updated</th>`)
		hw.raw(`</tr></thead><tbody>`)

		for _, a := range data.Assets {
			hw.raw(`<tr>`)
			if data.BulkDelete {
				hw.raw(`<td class="select-col"><input type="checkbox" name="ids"`)
				hw.attr("value", FormatInt64(a.ID))
				hw.raw(`/></td>`)
			}
			hw.raw(`<td><code`)
			hw.attr("title", a.Tag)
			hw.raw(`>`)
			hw.text(ShortIdentifier(a.Tag))
			hw.raw(`</code></td><td>`)
			if ownList {
				hw.raw(`<a`)
				hw.attr("href", data.BasePath+"/"+FormatInt64(a.ID))
				hw.raw(`>`)
				hw.text(a.Name)
				hw.raw(`</a>`)
			} else {
				hw.text(a.Name)
			}
			hw.raw(`</td><td>`)
			hw.text(a.SerialNumber)
			hw.raw(`</td><td><span`)
			hw.attr("class", "badge "+a.BadgeClass)
			hw.raw(`>`)
			hw.text(a.StatusLabel)
			hw.raw(`</span></td>`)
			if data.ShowOwner {
				hw.raw(`<td>`)
				hw.text(a.OwnerEmail)
				hw.raw(`</td>`)
			}
			hw.raw(`<td>`)
			hw.text(a.DepartmentName)
			hw.raw(`</td><td>`)
			hw.text(a.CategoryName)
			hw.raw(`</td><td>`)
			hw.text(a.UpdatedAt)
			hw.raw(`</td></tr>`)
		}
		hw.raw(`</tbody></table>`)

		if data.BulkDelete {
			hw.raw(`<div class="bulk-actions">`)
			hw.raw(`<button type="submit" class="btn-danger">Delete selected</button>`)
			hw.raw(`</div></form>`)
		}

		writePagination(hw, data.BasePath, data.Query, data.StatusFilter,
			data.Page, data.TotalPages, data.TotalCount, data.ShowingFrom, data.ShowingTo)

		closeLayout(hw)
	})
}

func writeStatusSelect(hw *htmlWriter, name string, options []viewmodels.StatusOption, blankLabel string) {
	hw.raw(`<select`)
	hw.attr("name", name)
	hw.raw(`>`)
	if blankLabel != "" {
		hw.raw(`<option value="">`)
		hw.text(blankLabel)
		hw.raw(`</option>`)
	}
	for _, opt := range options {
		hw.raw(`<option`)
		hw.attr("value", opt.Value)
		if opt.Selected {
			hw.raw(` selected`)
		}
		hw.raw(`>`)
		hw.text(opt.Label)
		hw.raw(`</option>`)
	}
	hw.raw(`</select>`)
}

func writeRefSelect(hw *htmlWriter, id, name string, options []viewmodels.RefOption) {
	hw.raw(`<select`)
	hw.attr("id", id)
	hw.attr("name", name)
	hw.raw(` required>`)
	selected := false
	for _, opt := range options {
		if opt.Selected {
			selected = true
		}
	}
	hw.raw(`<option value=""`)
	if !selected {
		hw.raw(` selected`)
	}
	hw.raw(` disabled>Choose…</option>`)
	for _, opt := range options {
		hw.raw(`<option`)
		hw.attr("value", FormatInt64(opt.ID))
		if opt.Selected {
			hw.raw(` selected`)
		}
		hw.raw(`>`)
		hw.text(opt.Name)
		hw.raw(`</option>`)
	}
	hw.raw(`</select>`)
}

func AssetFormPage(data viewmodels.AssetFormViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, data.Layout.Title)
		writeAlert(hw, data.Alert)

		action := "/user/assets"
		cancel := "/user/assets"
		if data.Editing {
			action = "/user/assets/" + FormatInt64(data.AssetID) + "/update"
			cancel = "/user/assets/" + FormatInt64(data.AssetID)
			hw.raw(`<p class="form-hint">Tag <code>`)
			hw.text(data.AssetTag)
			hw.raw(`</code></p>`)
		}

		hw.raw(`<form method="post"`)
		hw.attr("action", action)
		hw.raw(` class="stacked-form">`)
		csrfField(hw, data.Layout.CSRFToken)

		hw.raw(`<label for="name">Name</label>`)
		hw.raw(`<input id="name" type="text" name="name" required maxlength="120"`)
		hw.attr("value", data.Form.Name)
		hw.raw(`/>`)

		hw.raw(`<label for="serial_number">Serial number</label>`)
		hw.raw(`<input id="serial_number" type="text" name="serial_number" maxlength="120"`)
		hw.attr("value", data.Form.SerialNumber)
		hw.raw(`/>`)

		hw.raw(`<label for="status">Status</label>`)
		writeStatusSelect(hw, "status", data.StatusOptions, "")

		hw.raw(`<label for="department_id">Department</label>`)
		writeRefSelect(hw, "department_id", "department_id", data.Departments)

		hw.raw(`<label for="category_id">Category</label>`)
		writeRefSelect(hw, "category_id", "category_id", data.Categories)

		hw.raw(`<label for="description">Description</label>`)
		hw.raw(`<textarea id="description" name="description" rows="4" maxlength="2000">`)
		hw.text(data.Form.Description)
		hw.raw(`</textarea>`)

		hw.raw(`<div class="form-actions">`)
		if data.Editing {
			hw.raw(`<button type="submit" class="btn-primary">Save changes</button>`)
		} else {
			hw.raw(`<button type="submit" class="btn-primary">Register</button>`)
		}
		hw.raw(`<a class="btn-secondary"`)
		hw.attr("href", cancel)
		hw.raw(`>Cancel</a>`)
		hw.raw(`</div></form>`)

		closeLayout(hw)
	})
}

func AssetDetailPage(data viewmodels.AssetDetailViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, data.Asset.Name)

		if data.HasPendingRequest {
			hw.raw(`<div class="alert" role="status">A deletion request for this asset is awaiting review.</div>`)
		}

		detailHref := "/user/assets/" + FormatInt64(data.Asset.ID)

		hw.raw(`<dl class="detail-list">`)
		writeDetailRow(hw, "Tag", func() {
			hw.raw(`<code>`)
			hw.text(data.Asset.Tag)
			hw.raw(`</code>`)
		})
		writeDetailRow(hw, "Status", func() {
			hw.raw(`<span`)
			hw.attr("class", "badge "+data.Asset.BadgeClass)
			hw.raw(`>`)
			hw.text(data.Asset.StatusLabel)
			hw.raw(`</span>`)
		})
		writeDetailText(hw, "Serial number", data.Asset.SerialNumber)
		writeDetailText(hw, "Department", data.Asset.DepartmentName)
		writeDetailText(hw, "Category", data.Asset.CategoryName)
		writeDetailText(hw, "Registered", data.CreatedAt)
		writeDetailText(hw, "Last updated", data.Asset.UpdatedAt)
		hw.raw(`</dl>`)

		if data.Description != "" {
			hw.raw(`<section class="panel"><h2>Description</h2><p>`)
			hw.text(data.Description)
			hw.raw(`</p></section>`)
		}

		hw.raw(`<div class="form-actions">`)
		hw.raw(`<a class="btn-secondary"`)
		hw.attr("href", detailHref+"/edit")
		hw.raw(`>Edit</a>`)
		hw.raw(`</div>`)

		if !data.HasPendingRequest {
			hw.raw(`<section class="panel"><h2>Request deletion</h2>`)
			hw.raw(`<p class="form-hint">An admin reviews the request; the asset stays in the register until it is approved.</p>`)
			hw.raw(`<form method="post"`)
			hw.attr("action", detailHref+"/deletion-request")
			hw.raw(` class="stacked-form">`)
			csrfField(hw, data.Layout.CSRFToken)
			hw.raw(`<label for="reason">Reason</label>`)
			hw.raw(`<textarea id="reason" name="reason" rows="3" required maxlength="2000"></textarea>`)
			hw.raw(`<button type="submit" class="btn-danger">Request deletion</button>`)
			hw.raw(`</form></section>`)
		}

		if len(data.RecentRequests) > 0 {
			hw.raw(`<section class="panel"><h2>Deletion requests</h2>`)
			hw.raw(`<table class="data-table"><thead><tr>`)
			hw.raw(`<th>Status</th><th>Filed</th><th>Decided</th><th>Note</th>`)
			hw.raw(`</tr></thead><tbody>`)
			for _, it := range data.RecentRequests {
				hw.raw(`<tr><td><span`)
				hw.attr("class", "badge "+it.BadgeClass)
				hw.raw(`>`)
				hw.text(it.StatusLabel)
				hw.raw(`</span></td><td>`)
				hw.text(it.CreatedAt)
				hw.raw(`</td><td>`)
				hw.text(it.DecidedAt)
				hw.raw(`</td><td>`)
				if it.DecisionNote == "" {
					hw.raw(`—`)
				} else {
					hw.text(it.DecisionNote)
				}
				hw.raw(`</td></tr>`)
			}
			hw.raw(`</tbody></table></section>`)
		}

		closeLayout(hw)
	})
}

func writeDetailRow(hw *htmlWriter, label string, value func()) {
	hw.raw(`<div class="detail-row"><dt>`)
	hw.text(label)
	hw.raw(`</dt><dd>`)
	value()
	hw.raw(`</dd></div>`)
}

func writeDetailText(hw *htmlWriter, label, value string) {
	writeDetailRow(hw, label, func() {
		if value == "" {
			hw.raw(`—`)
		} else {
			hw.text(value)
		}
	})
}
