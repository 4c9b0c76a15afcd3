package views

import (
	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func AdminUsersPage(data viewmodels.UsersViewData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, data.Layout)
		pageTitle(hw, "Users")
		writeAlert(hw, data.Alert)

		if data.ResetLink != "" {
			writeResetLinkPanel(hw, data.ResetLinkEmail, data.ResetLink)
		}

		hw.raw(`<div class="toolbar">`)
		hw.raw(`<a id="admin-users-add-trigger" class="btn-sm-primary" href="/admin/users?open=add">Add user</a>`)
		hw.raw(`</div>`)

		if !data.HasUsers {
			hw.raw(`<p class="empty">No users yet.</p>`)
		} else {
			writeUsersTable(hw, data)
		}

		if data.OpenAdd {
			writeUserAddDialog(hw, data)
		}
		if data.OpenEdit {
			writeUserEditDialog(hw, data)
		}

		closeLayout(hw)
	})
}

// writeResetLinkPanel shows a freshly minted reset URL. It is rendered once,
// straight after the action; a reload will not bring it back.
func writeResetLinkPanel(hw *htmlWriter, email, link string) {
	hw.raw(`<section class="panel panel-highlight"><h2>Password reset link</h2>`)
	hw.raw(`<p>Hand this link to <strong>`)
	hw.text(email)
	hw.raw(`</strong>. It is shown only once and expires on its own.</p>`)
	hw.raw(`<input type="text" readonly class="reset-link" onfocus="this.select()"`)
	hw.attr("value", link)
	hw.raw(`/></section>`)
}

func writeUsersTable(hw *htmlWriter, data viewmodels.UsersViewData) {
	hw.raw(`<table class="data-table"><thead><tr>`)
	hw.raw(`<th>Email</th><th>Role</th><th>Status</th><th>Last sign-in</th><th class="actions-col"></th>`)
	hw.raw(`</tr></thead><tbody>`)
	for _, u := range data.Users {
		writeUserRow(hw, data.Layout.CSRFToken, u)
	}
	hw.raw(`</tbody></table>`)
}

func writeUserRow(hw *htmlWriter, csrfToken string, u viewmodels.UsersUserItem) {
	idPath := "/admin/users/" + FormatInt64(u.ID)

	hw.raw(`<tr><td>`)
	hw.text(u.Email)
	if u.IsSelf {
		hw.raw(` <span class="badge badge-outline">you</span>`)
	}
	hw.raw(`</td><td><span`)
	hw.attr("class", "badge "+AuthUserRoleBadgeClass(u.Role))
	hw.raw(`>`)
	hw.text(HumanizeAuthUserRole(u.Role))
	hw.raw(`</span>`)
	if u.IsLastAdmin {
		hw.raw(` <span class="badge badge-outline" title="The only active admin">last admin</span>`)
	}
	hw.raw(`</td><td><span`)
	hw.attr("class", "badge "+AuthUserStatusBadgeClass(u.IsActive))
	hw.raw(`>`)
	hw.text(AuthUserStatusLabel(u.IsActive))
	hw.raw(`</span></td><td><span`)
	if u.LastLoginTitle != "" {
		hw.attr("title", u.LastLoginTitle)
	}
	hw.raw(`>`)
	hw.text(u.LastLogin)
	hw.raw(`</span></td><td class="actions-col">`)

	hw.raw(`<a class="btn-sm-secondary"`)
	hw.attr("href", "/admin/users?open=edit&id="+FormatInt64(u.ID))
	hw.raw(`>Edit</a>`)

	hw.raw(`<form method="post"`)
	hw.attr("action", idPath+"/reset-link")
	hw.raw(` class="inline-form">`)
	csrfField(hw, csrfToken)
	hw.raw(`<button type="submit" class="btn-sm-secondary"`)
	if !u.IsActive {
		hw.raw(` disabled`)
		hw.attr("title", "User is disabled")
	}
	hw.raw(`>Reset link</button></form>`)

	hw.raw(`<form method="post"`)
	hw.attr("action", idPath+"/delete")
	hw.raw(` class="inline-form">`)
	csrfField(hw, csrfToken)
	hw.raw(`<button type="submit" class="btn-danger-ghost"`)
	if !u.CanDelete {
		hw.raw(` disabled`)
		if u.IsSelf {
			hw.attr("title", "You cannot delete your own user")
		} else {
			hw.attr("title", "The only active admin cannot be deleted")
		}
	}
	hw.raw(`>Delete</button></form>`)

	hw.raw(`</td></tr>`)
}

func writeUserAddDialog(hw *htmlWriter, data viewmodels.UsersViewData) {
	hw.raw(`<div class="modal-backdrop"><dialog open class="modal">`)
	hw.raw(`<h2>Add user</h2>`)
	hw.raw(`<form method="post" action="/admin/users" class="stacked-form">`)
	csrfField(hw, data.Layout.CSRFToken)

	hw.raw(`<label for="add-email">Email</label>`)
	hw.raw(`<input id="add-email" type="email" name="email" required`)
	hw.attr("value", data.Form.Email)
	hw.raw(`/>`)

	hw.raw(`<label for="add-role">Role</label>`)
	writeRoleSelect(hw, "add-role", data.Form.Role, false)

	hw.raw(`<label for="add-password">Password</label>`)
	hw.raw(`<input id="add-password" type="password" name="password" autocomplete="new-password" required minlength="8"/>`)
	hw.raw(`<label for="add-confirm">Confirm password</label>`)
	hw.raw(`<input id="add-confirm" type="password" name="confirm_password" autocomplete="new-password" required minlength="8"/>`)

	hw.raw(`<div class="form-actions">`)
	hw.raw(`<button type="submit" class="btn-primary">Create</button>`)
	hw.raw(`<a class="btn-secondary" href="/admin/users">Cancel</a>`)
	hw.raw(`</div></form></dialog></div>`)
}

func writeUserEditDialog(hw *htmlWriter, data viewmodels.UsersViewData) {
	form := data.EditForm
	hw.raw(`<div class="modal-backdrop"><dialog open class="modal">`)
	hw.raw(`<h2>Edit `)
	hw.text(form.Email)
	hw.raw(`</h2>`)
	hw.raw(`<form method="post"`)
	hw.attr("action", "/admin/users/"+FormatInt64(form.ID)+"/update")
	hw.raw(` class="stacked-form">`)
	csrfField(hw, data.Layout.CSRFToken)

	hw.raw(`<label for="edit-role">Role</label>`)
	writeRoleSelect(hw, "edit-role", form.Role, form.RoleDisabled)
	if form.RoleDisabledReason != "" {
		hw.raw(`<p class="form-hint">`)
		hw.text(form.RoleDisabledReason)
		hw.raw(`</p>`)
	}

	// Checkbox first so a checked box wins over the unchecked fallback.
	hw.raw(`<label class="check-label">`)
	hw.raw(`<input type="checkbox" name="is_active" value="1"`)
	if form.IsActive {
		hw.raw(` checked`)
	}
	hw.raw(`/> Active</label>`)
	hw.raw(`<input type="hidden" name="is_active" value="0"/>`)

	hw.raw(`<label for="edit-password">New password</label>`)
	hw.raw(`<input id="edit-password" type="password" name="password" autocomplete="new-password" minlength="8" placeholder="Leave blank to keep"/>`)
	hw.raw(`<label for="edit-confirm">Confirm password</label>`)
	hw.raw(`<input id="edit-confirm" type="password" name="confirm_password" autocomplete="new-password" minlength="8"/>`)

	hw.raw(`<div class="form-actions">`)
	hw.raw(`<button type="submit" class="btn-primary">Save</button>`)
	hw.raw(`<a class="btn-secondary" href="/admin/users">Cancel</a>`)
	hw.raw(`</div></form></dialog></div>`)
}

func writeRoleSelect(hw *htmlWriter, id, selected string, disabled bool) {
	hw.raw(`<select`)
	hw.attr("id", id)
	hw.raw(` name="role"`)
	if disabled {
		hw.raw(` disabled`)
	}
	hw.raw(`>`)
	for _, role := range []string{"user", "admin"} {
		hw.raw(`<option`)
		hw.attr("value", role)
		if role == selected {
			hw.raw(` selected`)
		}
		hw.raw(`>`)
		hw.text(HumanizeAuthUserRole(role))
		hw.raw(`</option>`)
	}
	hw.raw(`</select>`)
}
