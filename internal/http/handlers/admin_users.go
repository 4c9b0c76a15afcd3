package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/authn"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

type usersPageOptions struct {
	openAdd    bool
	openEdit   bool
	addForm    viewmodels.UsersForm
	editUserID int64
	editRole   string
	alert      *viewmodels.Alert

	resetLink      string
	resetLinkEmail string
}

func (h *Handlers) HandleAdminUsers(c *echo.Context) error {
	open := strings.ToLower(strings.TrimSpace(c.QueryParam("open")))
	id, _ := parseInt64(c.QueryParam("id"))

	return h.renderUsersPage(c, usersPageOptions{
		openAdd:    open == "add",
		openEdit:   open == "edit",
		editUserID: id,
	})
}

func (h *Handlers) HandleAdminUsersCreate(c *echo.Context) error {
	email := auth.NormalizeEmail(c.FormValue("email"))
	role := strings.ToLower(strings.TrimSpace(c.FormValue("role")))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	form := viewmodels.UsersForm{Email: email, Role: role}
	rerender := func(title, message string) error {
		return h.renderUsersPage(c, usersPageOptions{
			openAdd: true,
			addForm: form,
			alert:   &viewmodels.Alert{Title: title, Message: message, Destructive: true},
		})
	}

	if form.Email == "" {
		return rerender("Email required", "Provide an email address for the user.")
	}
	if !auth.ValidRole(form.Role) {
		return rerender("Invalid role", "Role must be admin or user.")
	}
	if strings.TrimSpace(password) == "" {
		return rerender("Password required", "Provide a password for the user.")
	}
	if password != confirm {
		return rerender("Passwords do not match", "Confirm the password to continue.")
	}
	if len(password) < 8 {
		return rerender("Password too short", "Use at least 8 characters.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return h.RenderError(c, err)
	}

	_, err = h.Q.CreateAuthUser(c.Request().Context(), db.CreateAuthUserParams{
		Email:        form.Email,
		PasswordHash: hash,
		Role:         form.Role,
		IsActive:     true,
	})
	if isUniqueViolation(err) {
		return rerender("User already exists", "A user with that email address already exists.")
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "User created",
		Description: form.Email,
	})
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *Handlers) HandleAdminUserUpdate(c *echo.Context) error {
	userID, ok := parseInt64(c.Param("id"))
	if !ok || userID <= 0 {
		return RenderNotFound(c)
	}
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	user, err := h.Q.GetAuthUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	role := strings.ToLower(strings.TrimSpace(c.FormValue("role")))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")
	activeRaw := c.FormValue("is_active")

	rerender := func(title, message string) error {
		return h.renderUsersPage(c, usersPageOptions{
			openEdit:   true,
			editUserID: userID,
			editRole:   role,
			alert:      &viewmodels.Alert{Title: title, Message: message, Destructive: true},
		})
	}

	if role != "" && !auth.ValidRole(role) {
		return rerender("Invalid role", "Role must be admin or user.")
	}

	changeRole := role != "" && strings.ToLower(strings.TrimSpace(user.Role)) != role
	if changeRole {
		if principal.UserID == user.ID {
			return rerender("Role change not allowed", "You cannot change your own role.")
		}
		refused, err := h.changeRoleGuarded(ctx, userID, role)
		if err != nil {
			return h.RenderError(c, err)
		}
		if refused {
			return rerender("Role change not allowed", "You cannot downgrade the last active admin.")
		}
	}

	changeActive := false
	if activeRaw != "" {
		desired := ParseBoolForm(activeRaw)
		changeActive = desired != user.IsActive
		if changeActive {
			if principal.UserID == user.ID {
				return rerender("Deactivation not allowed", "You cannot deactivate your own user.")
			}
			refused, err := h.setActiveGuarded(ctx, userID, desired)
			if err != nil {
				return h.RenderError(c, err)
			}
			if refused {
				return rerender("Deactivation not allowed", "You cannot deactivate the last active admin.")
			}
		}
	}

	changePassword := strings.TrimSpace(password) != "" || strings.TrimSpace(confirm) != ""
	if changePassword {
		if strings.TrimSpace(password) == "" {
			return rerender("Password required", "Provide a new password or leave both fields blank.")
		}
		if password != confirm {
			return rerender("Passwords do not match", "Confirm the new password to continue.")
		}
		if len(password) < 8 {
			return rerender("Password too short", "Use at least 8 characters.")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return h.RenderError(c, err)
		}
		if err := h.Q.UpdateAuthUserPasswordHash(ctx, db.UpdateAuthUserPasswordHashParams{ID: userID, PasswordHash: hash}); err != nil {
			return h.RenderError(c, err)
		}
	}

	if !changeRole && !changeActive && !changePassword {
		setFlashToast(c, viewmodels.ToastViewData{
			Category: "info",
			Title:    "No changes",
		})
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "User updated",
		Description: strings.TrimSpace(user.Email),
	})
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// changeRoleGuarded changes a user's role inside a transaction that locks the
// active admin rows, so the last admin cannot be downgraded concurrently.
// It reports refused=true when that rule blocks the change.
func (h *Handlers) changeRoleGuarded(ctx context.Context, userID int64, role string) (bool, error) {
	if h.Pool == nil {
		return false, errors.New("database pool not configured")
	}
	tx, err := h.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)
	qtx := h.Q.WithTx(tx)

	current, err := qtx.GetAuthUser(ctx, userID)
	if err != nil {
		return false, err
	}
	adminIDs, err := qtx.ListActiveAuthAdminsForUpdate(ctx)
	if err != nil {
		return false, err
	}
	if current.IsActive && strings.ToLower(strings.TrimSpace(current.Role)) == auth.RoleAdmin &&
		len(adminIDs) == 1 && role != auth.RoleAdmin {
		return true, nil
	}

	if err := qtx.UpdateAuthUserRole(ctx, db.UpdateAuthUserRoleParams{ID: userID, Role: role}); err != nil {
		return false, err
	}
	return false, tx.Commit(ctx)
}

// setActiveGuarded flips is_active under the same lock; deactivating the last
// active admin is refused.
func (h *Handlers) setActiveGuarded(ctx context.Context, userID int64, active bool) (bool, error) {
	if h.Pool == nil {
		return false, errors.New("database pool not configured")
	}
	tx, err := h.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)
	qtx := h.Q.WithTx(tx)

	current, err := qtx.GetAuthUser(ctx, userID)
	if err != nil {
		return false, err
	}
	adminIDs, err := qtx.ListActiveAuthAdminsForUpdate(ctx)
	if err != nil {
		return false, err
	}
	if !active && current.IsActive && strings.ToLower(strings.TrimSpace(current.Role)) == auth.RoleAdmin &&
		len(adminIDs) == 1 {
		return true, nil
	}

	if err := qtx.SetAuthUserActive(ctx, db.SetAuthUserActiveParams{ID: userID, IsActive: active}); err != nil {
		return false, err
	}
	return false, tx.Commit(ctx)
}

func (h *Handlers) HandleAdminUserDelete(c *echo.Context) error {
	userID, ok := parseInt64(c.Param("id"))
	if !ok || userID <= 0 {
		return RenderNotFound(c)
	}
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	user, err := h.Q.GetAuthUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	if principal.UserID == user.ID {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Delete not allowed",
			Description: "You cannot delete your own user.",
		})
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	if h.Pool == nil {
		return h.RenderError(c, errors.New("database pool not configured"))
	}
	tx, err := h.Pool.Begin(ctx)
	if err != nil {
		return h.RenderError(c, err)
	}
	defer tx.Rollback(ctx)
	qtx := h.Q.WithTx(tx)

	current, err := qtx.GetAuthUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}
	adminIDs, err := qtx.ListActiveAuthAdminsForUpdate(ctx)
	if err != nil {
		return h.RenderError(c, err)
	}
	if current.IsActive && strings.ToLower(strings.TrimSpace(current.Role)) == auth.RoleAdmin && len(adminIDs) == 1 {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Delete not allowed",
			Description: "You cannot delete the last active admin.",
		})
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	if err := qtx.DeleteAuthUser(ctx, userID); err != nil {
		return h.RenderError(c, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "User deleted",
		Description: strings.TrimSpace(current.Email),
	})
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// HandleAdminUserResetLink mints a signed password reset link for one user
// and shows it to the admin exactly once. Nothing is emailed.
func (h *Handlers) HandleAdminUserResetLink(c *echo.Context) error {
	userID, ok := parseInt64(c.Param("id"))
	if !ok || userID <= 0 {
		return RenderNotFound(c)
	}
	ctx := c.Request().Context()

	user, err := h.Q.GetAuthUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}
	if !user.IsActive {
		return h.renderUsersPage(c, usersPageOptions{
			alert: &viewmodels.Alert{Title: "User inactive", Message: "Activate the user before issuing a reset link.", Destructive: true},
		})
	}

	token, err := auth.NewResetToken([]byte(h.Cfg.ResetTokenSecret), user.ID, user.Email, h.Cfg.ResetTokenTTL)
	if err != nil {
		return h.RenderError(c, err)
	}

	return h.renderUsersPage(c, usersPageOptions{
		resetLink:      h.Cfg.BaseURL + "/reset-password?token=" + url.QueryEscape(token),
		resetLinkEmail: strings.TrimSpace(user.Email),
	})
}

func (h *Handlers) renderUsersPage(c *echo.Context, opts usersPageOptions) error {
	data, err := h.buildUsersViewData(c.Request().Context(), c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	return h.RenderComponent(c, views.AdminUsersPage(data))
}

func (h *Handlers) buildUsersViewData(ctx context.Context, c *echo.Context, opts usersPageOptions) (viewmodels.UsersViewData, error) {
	layout, err := h.LayoutData(ctx, c, "Users")
	if err != nil {
		return viewmodels.UsersViewData{}, err
	}
	principal, _ := authn.PrincipalFromContext(c)

	adminCount, err := h.Q.CountAuthAdmins(ctx)
	if err != nil {
		return viewmodels.UsersViewData{}, err
	}
	rows, err := h.Q.ListAuthUsers(ctx)
	if err != nil {
		return viewmodels.UsersViewData{}, err
	}

	users := make([]viewmodels.UsersUserItem, 0, len(rows))
	for _, row := range rows {
		role := strings.ToLower(strings.TrimSpace(row.Role))
		isSelf := principal.UserID == row.ID
		isLastAdmin := row.IsActive && role == auth.RoleAdmin && adminCount == 1

		lastLoginTitle := ""
		if row.LastLoginAt.Valid && row.LastLoginIp != "" {
			lastLoginTitle = "from " + row.LastLoginIp
		}
		users = append(users, viewmodels.UsersUserItem{
			ID:             row.ID,
			Email:          strings.TrimSpace(row.Email),
			Role:           role,
			IsActive:       row.IsActive,
			LastLogin:      formatTimestamp(row.LastLoginAt),
			LastLoginTitle: lastLoginTitle,
			IsSelf:         isSelf,
			IsLastAdmin:    isLastAdmin,
			CanEditRole:    !isSelf && !isLastAdmin,
			CanDelete:      !isSelf && !isLastAdmin,
		})
	}

	opts.addForm.Email = strings.TrimSpace(opts.addForm.Email)
	opts.addForm.Role = strings.ToLower(strings.TrimSpace(opts.addForm.Role))
	if opts.addForm.Role == "" {
		opts.addForm.Role = auth.RoleUser
	}

	data := viewmodels.UsersViewData{
		Layout:         layout,
		Users:          users,
		HasUsers:       len(users) > 0,
		OpenAdd:        opts.openAdd,
		Form:           opts.addForm,
		Alert:          opts.alert,
		ResetLink:      opts.resetLink,
		ResetLinkEmail: opts.resetLinkEmail,
	}

	if opts.openEdit {
		if opts.editUserID <= 0 {
			if data.Alert == nil {
				data.Alert = &viewmodels.Alert{Title: "Invalid user", Message: "Select a valid user to edit.", Destructive: true}
			}
		} else if user, err := h.Q.GetAuthUser(ctx, opts.editUserID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				if data.Alert == nil {
					data.Alert = &viewmodels.Alert{Title: "User not found", Message: "That user no longer exists.", Destructive: true}
				}
			} else {
				return viewmodels.UsersViewData{}, err
			}
		} else {
			role := strings.ToLower(strings.TrimSpace(user.Role))
			if opts.editRole != "" {
				role = strings.ToLower(strings.TrimSpace(opts.editRole))
			}

			roleDisabled := false
			roleDisabledReason := ""
			if principal.UserID == user.ID {
				roleDisabled = true
				roleDisabledReason = "You cannot change your own role."
			} else if user.IsActive && strings.ToLower(strings.TrimSpace(user.Role)) == auth.RoleAdmin && adminCount == 1 {
				roleDisabled = true
				roleDisabledReason = "You cannot change the role of the last active admin."
			}

			data.EditForm = viewmodels.UsersEditForm{
				ID:                 user.ID,
				Email:              strings.TrimSpace(user.Email),
				Role:               role,
				IsActive:           user.IsActive,
				RoleDisabled:       roleDisabled,
				RoleDisabledReason: roleDisabledReason,
			}
			data.OpenEdit = true
		}
	}

	return data, nil
}
