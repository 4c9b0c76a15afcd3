package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/authn"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
	"github.com/assetdesk/assetdesk/internal/metrics"
)

func deletionRequestItem(r db.DeletionRequest) viewmodels.DeletionRequestItem {
	it := viewmodels.DeletionRequestItem{
		ID:             r.ID,
		AssetGone:      !r.AssetID.Valid,
		AssetName:      r.AssetName,
		AssetTag:       r.AssetTag,
		RequesterEmail: "—",
		Reason:         r.Reason,
		Status:         r.Status,
		StatusLabel:    requestStatusLabel(r.Status),
		BadgeClass:     requestStatusBadgeClass(r.Status),
		DeciderEmail:   "—",
		DecisionNote:   r.DecisionNote,
		CreatedAt:      formatTime(r.CreatedAt),
		DecidedAt:      formatTimestamp(r.DecidedAt),
		IsPending:      r.Status == db.DeletionRequestStatusPending,
	}
	if r.AssetID.Valid {
		it.AssetID = r.AssetID.Int64
	}
	return it
}

func deletionRequestItems(rows []db.DeletionRequestWithRefsRow) []viewmodels.DeletionRequestItem {
	items := make([]viewmodels.DeletionRequestItem, 0, len(rows))
	for _, row := range rows {
		it := deletionRequestItem(row.DeletionRequest)
		if row.RequesterEmail.Valid {
			it.RequesterEmail = row.RequesterEmail.String
		}
		if row.DeciderEmail.Valid {
			it.DeciderEmail = row.DeciderEmail.String
		}
		items = append(items, it)
	}
	return items
}

// ownDeletionRequestItems is for rows already scoped to one requester, so the
// join for the requester email is unnecessary.
func ownDeletionRequestItems(rows []db.DeletionRequest, requesterEmail string) []viewmodels.DeletionRequestItem {
	items := make([]viewmodels.DeletionRequestItem, 0, len(rows))
	for _, row := range rows {
		it := deletionRequestItem(row)
		it.RequesterEmail = requesterEmail
		items = append(items, it)
	}
	return items
}

// HandleDeletionRequests renders the review queue, pending requests first.
func (h *Handlers) HandleDeletionRequests(c *echo.Context) error {
	ctx := c.Request().Context()

	layout, err := h.LayoutData(ctx, c, "Deletion requests")
	if err != nil {
		return h.RenderError(c, err)
	}

	statusFilter := strings.TrimSpace(c.QueryParam("status"))
	if !db.ValidDeletionRequestStatus(statusFilter) {
		statusFilter = ""
	}

	const perPage = 20
	total, err := h.Q.CountDeletionRequestsByStatus(ctx, statusFilter)
	if err != nil {
		return h.RenderError(c, err)
	}
	page, totalPages, offset := paginate(total, parsePageParam(c), perPage)

	rows, err := h.Q.ListDeletionRequestsPageByStatus(ctx, db.ListDeletionRequestsPageByStatusParams{
		Status: statusFilter,
		Limit:  perPage,
		Offset: int32(offset),
	})
	if err != nil {
		return h.RenderError(c, err)
	}

	from, to := showingRange(total, offset, len(rows))
	return h.RenderComponent(c, views.DeletionRequestsPage(viewmodels.DeletionRequestsViewData{
		Layout:        layout,
		Requests:      deletionRequestItems(rows),
		HasRequests:   len(rows) > 0,
		StatusFilter:  statusFilter,
		StatusOptions: requestStatusOptions(statusFilter),
		Page:          page,
		TotalPages:    totalPages,
		TotalCount:    total,
		ShowingFrom:   from,
		ShowingTo:     to,
	}))
}

// HandleDeletionRequestApprove approves a pending request and deletes the
// asset it points at, both inside one transaction.
func (h *Handlers) HandleDeletionRequestApprove(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return RenderNotFound(c)
	}
	ctx := c.Request().Context()
	note := strings.TrimSpace(c.FormValue("note"))

	tx, err := h.Pool.Begin(ctx)
	if err != nil {
		return h.RenderError(c, err)
	}
	defer tx.Rollback(ctx)
	qtx := h.Q.WithTx(tx)

	req, err := qtx.GetDeletionRequest(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}
	if req.Status != db.DeletionRequestStatusPending {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "warning",
			Title:       "Already decided",
			Description: "This request was decided in the meantime.",
		})
		return c.Redirect(http.StatusSeeOther, "/admin/deletion-requests")
	}

	if err := qtx.UpdateDeletionRequestDecision(ctx, db.UpdateDeletionRequestDecisionParams{
		ID:           req.ID,
		Status:       db.DeletionRequestStatusApproved,
		DecidedBy:    principal.UserID,
		DecisionNote: note,
	}); err != nil {
		return h.RenderError(c, err)
	}

	// The asset may already be gone; approving then just closes the request.
	assetDeleted := false
	if req.AssetID.Valid {
		n, err := qtx.DeleteAsset(ctx, req.AssetID.Int64)
		if err != nil {
			return h.RenderError(c, err)
		}
		assetDeleted = n > 0
	}

	if err := tx.Commit(ctx); err != nil {
		return h.RenderError(c, err)
	}

	metrics.DeletionRequestsTotal.WithLabelValues("approved").Inc()
	if assetDeleted {
		metrics.AssetsDeletedTotal.WithLabelValues("request").Inc()
	}
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Request approved",
		Description: "The asset "+req.AssetName+" was deleted.",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/deletion-requests")
}

// HandleDeletionRequestReject marks a pending request rejected and keeps the
// asset.
func (h *Handlers) HandleDeletionRequestReject(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return RenderNotFound(c)
	}
	ctx := c.Request().Context()
	note := strings.TrimSpace(c.FormValue("note"))

	req, err := h.Q.GetDeletionRequest(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return RenderNotFound(c)
	}
	if err != nil {
		return h.RenderError(c, err)
	}
	if req.Status != db.DeletionRequestStatusPending {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "warning",
			Title:       "Already decided",
			Description: "This request was decided in the meantime.",
		})
		return c.Redirect(http.StatusSeeOther, "/admin/deletion-requests")
	}

	if err := h.Q.UpdateDeletionRequestDecision(ctx, db.UpdateDeletionRequestDecisionParams{
		ID:           req.ID,
		Status:       db.DeletionRequestStatusRejected,
		DecidedBy:    principal.UserID,
		DecisionNote: note,
	}); err != nil {
		return h.RenderError(c, err)
	}

	metrics.DeletionRequestsTotal.WithLabelValues("rejected").Inc()
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "info",
		Title:       "Request rejected",
		Description: "The asset "+req.AssetName+" stays in the inventory.",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/deletion-requests")
}
