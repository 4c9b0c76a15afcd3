package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

// RefListPage renders both the departments and the categories admin pages;
// the view data carries the wording and the base path.
func RefListPage(data viewmodels.RefListViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, data.Heading)
		writeAlert(hw, data.Alert)

		hw.raw(`<section class="panel"><h2>Add a `)
		hw.text(data.Singular)
		hw.raw(`</h2>`)
		hw.raw(`<form method="post"`)
		hw.attr("action", data.BasePath)
		hw.raw(` class="inline-form">`)
		csrfField(hw, data.Layout.CSRFToken)
		hw.raw(`<input type="text" name="name" placeholder="Name" required maxlength="120"`)
		hw.attr("value", data.Form.Name)
		hw.raw(`/>`)
		hw.raw(`<input type="text" name="description" placeholder="Description (optional)" maxlength="500"`)
		hw.attr("value", data.Form.Description)
		hw.raw(`/>`)
		hw.raw(`<button type="submit" class="btn-primary">Add</button>`)
		hw.raw(`</form></section>`)

		if !data.HasItems {
			hw.raw(`<p class="empty">None yet.</p>`)
			closeLayout(hw)
			return
		}

		hw.raw(`<table class="data-table"><thead><tr>`)
		hw.raw(`<th>Name</th><th>Description</th><th class="num">Assets</th><th class="actions-col"></th>`)
		hw.raw(`</tr></thead><tbody>`)
		for _, item := range data.Items {
			writeRefRow(hw, data, item)
		}
		hw.raw(`</tbody></table>`)

		closeLayout(hw)
	})
}

func writeRefRow(hw *htmlWriter, data viewmodels.RefListViewData, item viewmodels.RefItem) {
	idPath := data.BasePath + "/" + FormatInt64(item.ID)

	hw.raw(`<tr><td>`)
	hw.text(item.Name)
	hw.raw(`</td><td>`)
	if item.Description == "" {
		hw.raw(`—`)
	} else {
		hw.text(item.Description)
	}
	hw.raw(`</td><td class="num">`)
	hw.text(FormatInt64(item.AssetCount))
	hw.raw(`</td><td class="actions-col">`)

	hw.raw(`<details class="row-edit"><summary>Edit</summary>`)
	hw.raw(`<form method="post"`)
	hw.attr("action", idPath+"/update")
	hw.raw(` class="inline-form">`)
	csrfField(hw, data.Layout.CSRFToken)
	hw.raw(`<input type="text" name="name" required maxlength="120"`)
	hw.attr("value", item.Name)
	hw.raw(`/>`)
	hw.raw(`<input type="text" name="description" maxlength="500"`)
	hw.attr("value", item.Description)
	hw.raw(`/>`)
	hw.raw(`<button type="submit" class="btn-secondary">Save</button>`)
	hw.raw(`</form></details>`)

	hw.raw(`<form method="post"`)
	hw.attr("action", idPath+"/delete")
	hw.raw(` class="inline-form">`)
	csrfField(hw, data.Layout.CSRFToken)
	hw.raw(`<button type="submit" class="btn-danger-ghost"`)
	if !item.CanDelete {
		hw.raw(` disabled`)
		hw.attr("title", "Reassign its assets first")
	}
	hw.raw(`>Delete</button>`)
	hw.raw(`</form>`)

	hw.raw(`</td></tr>`)
}
