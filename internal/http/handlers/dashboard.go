package handlers

import (
	"github.com/labstack/echo/v5"
	"golang.org/x/sync/errgroup"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

// HandleAdminDashboard renders the admin dashboard. The five counters are
// independent, so they load concurrently.
func (h *Handlers) HandleAdminDashboard(c *echo.Context) error {
	ctx := c.Request().Context()
	layout, err := h.LayoutData(ctx, c, "Dashboard")
	if err != nil {
		return h.RenderError(c, err)
	}

	var (
		totalAssets int64
		totalUsers  int64
		pending     int64
		statusRows  []db.CountAssetsGroupedByStatusRow
		recentRows  []db.DeletionRequestWithRefsRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalAssets, err = h.Q.CountAssets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		statusRows, err = h.Q.CountAssetsGroupedByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalUsers, err = h.Q.CountAuthUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = h.Q.CountPendingDeletionRequests(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recentRows, err = h.Q.ListDeletionRequestsPageByStatus(gctx, db.ListDeletionRequestsPageByStatusParams{Limit: 5})
		return err
	})
	if err := g.Wait(); err != nil {
		return h.RenderError(c, err)
	}

	data := viewmodels.AdminDashboardViewData{
		Layout:          layout,
		TotalAssets:     totalAssets,
		TotalUsers:      totalUsers,
		PendingRequests: pending,
		StatusCounts:    statusCounts(statusRows),
		RecentRequests:  deletionRequestItems(recentRows),
	}
	return h.RenderComponent(c, views.AdminDashboardPage(data))
}

// HandleHealthz returns a simple health check response.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(200, "ok")
}
