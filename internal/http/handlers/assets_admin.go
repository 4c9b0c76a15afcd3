package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
	"github.com/assetdesk/assetdesk/internal/metrics"
)

// HandleAdminAssets lists every asset with search and status filters.
func (h *Handlers) HandleAdminAssets(c *echo.Context) error {
	ctx := c.Request().Context()

	layout, err := h.LayoutData(ctx, c, "Assets")
	if err != nil {
		return h.RenderError(c, err)
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	statusFilter := strings.TrimSpace(c.QueryParam("status"))
	if !db.ValidAssetStatus(statusFilter) {
		statusFilter = ""
	}

	const perPage = 20
	total, err := h.Q.CountAssetsByQueryAndStatus(ctx, db.CountAssetsByQueryAndStatusParams{
		Query:  query,
		Status: statusFilter,
	})
	if err != nil {
		return h.RenderError(c, err)
	}
	page, totalPages, offset := paginate(total, parsePageParam(c), perPage)

	rows, err := h.Q.ListAssetsPageByQueryAndStatus(ctx, db.ListAssetsPageByQueryAndStatusParams{
		Query:  query,
		Status: statusFilter,
		Limit:  perPage,
		Offset: int32(offset),
	})
	if err != nil {
		return h.RenderError(c, err)
	}

	from, to := showingRange(total, offset, len(rows))
	return h.RenderComponent(c, views.AssetsListPage(viewmodels.AssetsListViewData{
		Layout:        layout,
		Assets:        assetItems(rows),
		HasAssets:     len(rows) > 0,
		Query:         query,
		StatusFilter:  statusFilter,
		StatusOptions: assetStatusOptions(statusFilter),
		BasePath:      "/admin/assets",
		ShowOwner:     true,
		BulkDelete:    true,
		Page:          page,
		TotalPages:    totalPages,
		TotalCount:    total,
		ShowingFrom:   from,
		ShowingTo:     to,
	}))
}

// HandleAdminAssetsBulkDelete deletes the checked assets one by one. A bad or
// vanished id does not stop the rest; the outcome lands in a single toast.
func (h *Handlers) HandleAdminAssetsBulkDelete(c *echo.Context) error {
	ctx := c.Request().Context()

	if err := c.Request().ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	ids := c.Request().PostForm["ids"]
	if len(ids) == 0 {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "info",
			Title:       "Nothing selected",
			Description: "Tick at least one asset to delete.",
		})
		return c.Redirect(http.StatusSeeOther, "/admin/assets")
	}

	deleted, failed := 0, 0
	for _, raw := range ids {
		id, ok := parseInt64(raw)
		if !ok {
			failed++
			continue
		}
		n, err := h.Q.DeleteAsset(ctx, id)
		if err != nil {
			c.Logger().Error("bulk delete asset", "asset_id", id, "error", err)
			failed++
			continue
		}
		if n == 0 {
			failed++
			continue
		}
		deleted++
	}

	if deleted > 0 {
		metrics.AssetsDeletedTotal.WithLabelValues("bulk").Add(float64(deleted))
	}
	if failed > 0 {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "warning",
			Title:       "Some deletions failed",
			Description: fmt.Sprintf("Deleted %d of %d selected assets; %d failed.", deleted, len(ids), failed),
		})
	} else {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "success",
			Title:       "Assets deleted",
			Description: fmt.Sprintf("Deleted %d of %d selected assets.", deleted, len(ids)),
		})
	}
	return c.Redirect(http.StatusSeeOther, "/admin/assets")
}
