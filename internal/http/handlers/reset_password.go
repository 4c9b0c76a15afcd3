package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

// resetTokenMessage maps a parse failure to the message shown on the page.
func resetTokenMessage(err error) string {
	if errors.Is(err, auth.ErrResetTokenExpired) {
		return "This reset link has expired. Ask an administrator for a new one."
	}
	return "This reset link is invalid. Ask an administrator for a new one."
}

func (h *Handlers) HandleResetPasswordGet(c *echo.Context) error {
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.ResetPasswordViewData{
		CSRFToken: csrfToken,
		Toast:     popFlashToast(c),
	}

	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		data.ErrorMessage = "This page needs a reset link. Ask an administrator for one."
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}

	claims, err := auth.ParseResetToken([]byte(h.Cfg.ResetTokenSecret), token)
	if err != nil {
		data.ErrorMessage = resetTokenMessage(err)
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}

	data.Token = token
	data.Email = claims.Email
	data.TokenValid = true
	return h.RenderComponent(c, views.ResetPasswordPage(data))
}

func (h *Handlers) HandleResetPasswordPost(c *echo.Context) error {
	ctx := c.Request().Context()

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.ResetPasswordViewData{CSRFToken: csrfToken}

	token := strings.TrimSpace(c.FormValue("token"))
	claims, err := auth.ParseResetToken([]byte(h.Cfg.ResetTokenSecret), token)
	if err != nil {
		data.ErrorMessage = resetTokenMessage(err)
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}

	data.Token = token
	data.Email = claims.Email
	data.TokenValid = true

	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")
	if strings.TrimSpace(password) == "" {
		data.ErrorMessage = "Provide a new password."
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}
	if password != confirm {
		data.ErrorMessage = "Passwords do not match."
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}
	if len(password) < 8 {
		data.ErrorMessage = "Use at least 8 characters."
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}

	user, err := h.Q.GetAuthUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			data.TokenValid = false
			data.ErrorMessage = resetTokenMessage(auth.ErrResetTokenInvalid)
			return h.RenderComponent(c, views.ResetPasswordPage(data))
		}
		return err
	}
	if !user.IsActive || !strings.EqualFold(strings.TrimSpace(user.Email), strings.TrimSpace(claims.Email)) {
		data.TokenValid = false
		data.ErrorMessage = resetTokenMessage(auth.ErrResetTokenInvalid)
		return h.RenderComponent(c, views.ResetPasswordPage(data))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := h.Q.UpdateAuthUserPasswordHash(ctx, db.UpdateAuthUserPasswordHashParams{
		ID:           user.ID,
		PasswordHash: hash,
	}); err != nil {
		return err
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Password updated",
		Description: "Sign in with your new password.",
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}
