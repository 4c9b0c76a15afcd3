package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/auth/providers"
	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/authn"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
	"github.com/assetdesk/assetdesk/internal/metrics"
)

func (h *Handlers) HandleLoginGet(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	count, err := h.Q.CountAuthUsers(c.Request().Context())
	if err != nil {
		return err
	}

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken:     csrfToken,
		Next:          authn.SanitizeNext(c.QueryParam("next")),
		SetupRequired: count == 0,
		Toast:         popFlashToast(c),
	}
	return h.RenderComponent(c, views.LoginPage(data))
}

func (h *Handlers) HandleLoginPost(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	ctx := c.Request().Context()

	count, err := h.Q.CountAuthUsers(ctx)
	if err != nil {
		return err
	}

	email := auth.NormalizeEmail(c.FormValue("email"))
	password := c.FormValue("password")
	next := authn.SanitizeNext(c.FormValue("next"))
	ip := strings.TrimSpace(c.RealIP())

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		CSRFToken: csrfToken,
		Email:     email,
		Next:      next,
	}

	if count == 0 {
		data.SetupRequired = true
		return h.RenderComponent(c, views.LoginPage(data))
	}

	if email == "" || strings.TrimSpace(password) == "" {
		data.ErrorMessage = "Invalid email or password."
		return h.RenderComponent(c, views.LoginPage(data))
	}

	// A redis outage degrades to an unthrottled login rather than locking
	// everyone out.
	if h.Limiter != nil {
		blocked, err := h.Limiter.Blocked(ctx, email, ip)
		if err != nil {
			slog.Warn("login throttle unavailable", "error", err)
		} else if blocked {
			metrics.SignInAttemptsTotal.WithLabelValues("throttled").Inc()
			data.ErrorMessage = "Too many failed attempts. Try again later."
			return h.RenderComponent(c, views.LoginPage(data))
		}
	}

	passwordProvider := providers.NewPasswordProvider(h.Q)
	principal, err := passwordProvider.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.SignInAttemptsTotal.WithLabelValues("failure").Inc()
			if h.Limiter != nil {
				if rerr := h.Limiter.RecordFailure(ctx, email, ip); rerr != nil {
					slog.Warn("login throttle unavailable", "error", rerr)
				}
			}
			data.ErrorMessage = "Invalid email or password."
			return h.RenderComponent(c, views.LoginPage(data))
		}
		return err
	}

	if err := h.Sessions.RenewToken(ctx); err != nil {
		return err
	}
	h.Sessions.Put(ctx, authn.SessionKeyUserID, principal.UserID)

	metrics.SignInAttemptsTotal.WithLabelValues("success").Inc()
	if h.Limiter != nil {
		if rerr := h.Limiter.Reset(ctx, email, ip); rerr != nil {
			slog.Warn("login throttle unavailable", "error", rerr)
		}
	}

	_ = h.Q.UpdateAuthUserLoginMeta(ctx, db.UpdateAuthUserLoginMetaParams{
		ID:          principal.UserID,
		LastLoginAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
		LastLoginIp: ip,
	})

	if next != "" {
		return c.Redirect(http.StatusSeeOther, next)
	}
	if principal.IsAdmin() {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return c.Redirect(http.StatusSeeOther, "/user")
}

func (h *Handlers) HandleLogoutPost(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	if err := h.Sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Signed out",
	})

	addVary(c, "HX-Request")
	if isHX(c) {
		setHXRedirect(c, "/login")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
