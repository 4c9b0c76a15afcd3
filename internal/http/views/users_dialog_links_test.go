package views

import (
	"testing"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func TestAdminUsersPageUsesQueryParamModalOpenLink(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AdminUsersPage(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{
			CSRFToken: "csrf-token-123",
		},
	}))

	assertContains(t, html, `id="admin-users-add-trigger" class="btn-sm-primary" href="/admin/users?open=add"`)
	assertNotContains(t, html, `<dialog`)
}

func TestAdminUsersPageOpensAddDialog(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AdminUsersPage(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{
			CSRFToken: "csrf-token-123",
		},
		OpenAdd: true,
		Form:    viewmodels.UsersForm{Role: "user"},
	}))

	assertContains(t, html, `<dialog open class="modal">`)
	assertContains(t, html, `action="/admin/users"`)
	assertContains(t, html, `name="confirm_password"`)
}

func TestAdminUsersPageOpensEditDialog(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AdminUsersPage(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{
			CSRFToken: "csrf-token-123",
		},
		OpenEdit: true,
		EditForm: viewmodels.UsersEditForm{
			ID:       7,
			Email:    "user@example.com",
			Role:     "user",
			IsActive: true,
		},
	}))

	assertContains(t, html, `action="/admin/users/7/update"`)
	assertContains(t, html, `name="is_active"`)
	assertContains(t, html, `placeholder="Leave blank to keep"`)
}

func TestAdminUsersPageDisablesRoleSelectForLastAdmin(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AdminUsersPage(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{
			CSRFToken: "csrf-token-123",
		},
		OpenEdit: true,
		EditForm: viewmodels.UsersEditForm{
			ID:                 3,
			Email:              "admin@example.com",
			Role:               "admin",
			IsActive:           true,
			RoleDisabled:       true,
			RoleDisabledReason: "The only active admin keeps the admin role.",
		},
	}))

	assertContains(t, html, `name="role" disabled`)
	assertContains(t, html, `The only active admin keeps the admin role.`)
}

func TestAdminUsersPageShowsFreshResetLink(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AdminUsersPage(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{
			CSRFToken: "csrf-token-123",
		},
		ResetLink:      "https://assetdesk.example/reset-password?token=abc123",
		ResetLinkEmail: "user@example.com",
	}))

	assertContains(t, html, `value="https://assetdesk.example/reset-password?token=abc123"`)
	assertContains(t, html, `user@example.com`)
}
