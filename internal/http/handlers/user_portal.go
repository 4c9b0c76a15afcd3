package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/authn"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

// HandleUserHome renders the user portal dashboard: the visitor's own asset
// counts and their recent deletion requests.
func (h *Handlers) HandleUserHome(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}

	ctx := c.Request().Context()
	layout, err := h.LayoutData(ctx, c, "Overview")
	if err != nil {
		return h.RenderError(c, err)
	}

	total, err := h.Q.CountAssetsByOwnerAndQuery(ctx, db.CountAssetsByOwnerAndQueryParams{OwnerID: principal.UserID})
	if err != nil {
		return h.RenderError(c, err)
	}

	statusRows, err := h.Q.CountAssetsByOwnerGroupedByStatus(ctx, principal.UserID)
	if err != nil {
		return h.RenderError(c, err)
	}

	recent, err := h.Q.ListRecentDeletionRequestsByRequester(ctx, db.ListRecentDeletionRequestsByRequesterParams{
		RequestedBy: principal.UserID,
		Limit:       5,
	})
	if err != nil {
		return h.RenderError(c, err)
	}

	data := viewmodels.UserHomeViewData{
		Layout:         layout,
		TotalAssets:    total,
		StatusCounts:   statusCounts(statusRows),
		RecentRequests: ownDeletionRequestItems(recent, principal.Email),
	}
	return h.RenderComponent(c, views.UserHomePage(data))
}
