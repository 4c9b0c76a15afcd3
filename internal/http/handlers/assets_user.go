package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/authn"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
	"github.com/assetdesk/assetdesk/internal/metrics"
)

// loadOwnAsset resolves the :id path param to an asset owned by ownerID.
// Someone else's asset is indistinguishable from a missing one.
func (h *Handlers) loadOwnAsset(c *echo.Context, ownerID int64) (db.AssetWithRefsRow, bool, error) {
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return db.AssetWithRefsRow{}, false, nil
	}
	row, err := h.Q.GetAssetWithRefs(c.Request().Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.AssetWithRefsRow{}, false, nil
	}
	if err != nil {
		return db.AssetWithRefsRow{}, false, err
	}
	if !row.OwnerID.Valid || row.OwnerID.Int64 != ownerID {
		return db.AssetWithRefsRow{}, false, nil
	}
	return row, true, nil
}

// HandleUserAssets lists the visitor's own assets with an optional search.
func (h *Handlers) HandleUserAssets(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	layout, err := h.LayoutData(ctx, c, "My assets")
	if err != nil {
		return h.RenderError(c, err)
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	const perPage = 20
	total, err := h.Q.CountAssetsByOwnerAndQuery(ctx, db.CountAssetsByOwnerAndQueryParams{
		OwnerID: principal.UserID,
		Query:   query,
	})
	if err != nil {
		return h.RenderError(c, err)
	}
	page, totalPages, offset := paginate(total, parsePageParam(c), perPage)

	rows, err := h.Q.ListAssetsPageByOwnerAndQuery(ctx, db.ListAssetsPageByOwnerAndQueryParams{
		OwnerID: principal.UserID,
		Query:   query,
		Limit:   perPage,
		Offset:  int32(offset),
	})
	if err != nil {
		return h.RenderError(c, err)
	}

	from, to := showingRange(total, offset, len(rows))
	return h.RenderComponent(c, views.AssetsListPage(viewmodels.AssetsListViewData{
		Layout:      layout,
		Assets:      assetItems(rows),
		HasAssets:   len(rows) > 0,
		Query:       query,
		BasePath:    "/user/assets",
		Page:        page,
		TotalPages:  totalPages,
		TotalCount:  total,
		ShowingFrom: from,
		ShowingTo:   to,
	}))
}

// renderAssetForm fills in the layout and both reference dropdowns, which
// every render of the form needs regardless of what triggered it.
func (h *Handlers) renderAssetForm(c *echo.Context, title string, data viewmodels.AssetFormViewData) error {
	ctx := c.Request().Context()
	layout, err := h.LayoutData(ctx, c, title)
	if err != nil {
		return h.RenderError(c, err)
	}
	departments, categories, err := h.assetFormRefs(ctx, data.Form)
	if err != nil {
		return h.RenderError(c, err)
	}
	data.Layout = layout
	data.Departments = departments
	data.Categories = categories
	data.StatusOptions = assetStatusOptions(data.Form.Status)
	return h.RenderComponent(c, views.AssetFormPage(data))
}

func (h *Handlers) HandleUserAssetNew(c *echo.Context) error {
	return h.renderAssetForm(c, "New asset", viewmodels.AssetFormViewData{
		Form: viewmodels.AssetForm{Status: db.AssetStatusInService},
	})
}

// HandleUserAssetsCreate registers a new asset owned by the visitor. The tag
// is assigned server-side and never comes from the form.
func (h *Handlers) HandleUserAssetsCreate(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	in := parseAssetForm(c)
	if err := validate.Struct(in); err != nil {
		return h.renderAssetForm(c, "New asset", viewmodels.AssetFormViewData{
			Form:  in.viewForm(),
			Alert: &viewmodels.Alert{Title: "Check the form", Message: validationMessage(err), Destructive: true},
		})
	}

	asset, err := h.Q.CreateAsset(ctx, db.CreateAssetParams{
		Tag:          uuid.NewString(),
		Name:         in.Name,
		SerialNumber: in.SerialNumber,
		Description:  in.Description,
		Status:       in.Status,
		OwnerID:      pgtype.Int8{Int64: principal.UserID, Valid: true},
		DepartmentID: in.DepartmentID,
		CategoryID:   in.CategoryID,
	})
	if isForeignKeyViolation(err) {
		return h.renderAssetForm(c, "New asset", viewmodels.AssetFormViewData{
			Form:  in.viewForm(),
			Alert: &viewmodels.Alert{Title: "Check the form", Message: "The chosen department or category no longer exists.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	metrics.AssetsCreatedTotal.Inc()
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Asset registered",
		Description: asset.Name+" was added to the inventory.",
	})
	return c.Redirect(http.StatusSeeOther, "/user/assets/"+strconv.FormatInt(asset.ID, 10))
}

// HandleUserAssetShow renders one owned asset with its deletion history.
func (h *Handlers) HandleUserAssetShow(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	row, found, err := h.loadOwnAsset(c, principal.UserID)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !found {
		return RenderNotFound(c)
	}

	layout, err := h.LayoutData(ctx, c, row.Name)
	if err != nil {
		return h.RenderError(c, err)
	}
	hasPending, err := h.Q.HasPendingDeletionRequestForAsset(ctx, row.ID)
	if err != nil {
		return h.RenderError(c, err)
	}
	history, err := h.Q.ListDeletionRequestsByAsset(ctx, row.ID)
	if err != nil {
		return h.RenderError(c, err)
	}

	return h.RenderComponent(c, views.AssetDetailPage(viewmodels.AssetDetailViewData{
		Layout:            layout,
		Asset:             assetItem(row),
		Description:       row.Description,
		CreatedAt:         formatTime(row.CreatedAt),
		HasPendingRequest: hasPending,
		RecentRequests:    ownDeletionRequestItems(history, principal.Email),
	}))
}

func (h *Handlers) HandleUserAssetEdit(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	row, found, err := h.loadOwnAsset(c, principal.UserID)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !found {
		return RenderNotFound(c)
	}
	return h.renderAssetForm(c, "Edit "+row.Name, viewmodels.AssetFormViewData{
		Form: viewmodels.AssetForm{
			Name:         row.Name,
			SerialNumber: row.SerialNumber,
			Description:  row.Description,
			Status:       row.Status,
			DepartmentID: row.DepartmentID,
			CategoryID:   row.CategoryID,
		},
		Editing:  true,
		AssetID:  row.ID,
		AssetTag: row.Tag,
	})
}

func (h *Handlers) HandleUserAssetUpdate(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	row, found, err := h.loadOwnAsset(c, principal.UserID)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !found {
		return RenderNotFound(c)
	}

	in := parseAssetForm(c)
	rerender := func(alert viewmodels.Alert) error {
		return h.renderAssetForm(c, "Edit "+row.Name, viewmodels.AssetFormViewData{
			Form:     in.viewForm(),
			Editing:  true,
			AssetID:  row.ID,
			AssetTag: row.Tag,
			Alert:    &alert,
		})
	}
	if err := validate.Struct(in); err != nil {
		return rerender(viewmodels.Alert{Title: "Check the form", Message: validationMessage(err), Destructive: true})
	}

	err = h.Q.UpdateAsset(ctx, db.UpdateAssetParams{
		ID:           row.ID,
		Name:         in.Name,
		SerialNumber: in.SerialNumber,
		Description:  in.Description,
		Status:       in.Status,
		DepartmentID: in.DepartmentID,
		CategoryID:   in.CategoryID,
	})
	if isForeignKeyViolation(err) {
		return rerender(viewmodels.Alert{Title: "Check the form", Message: "The chosen department or category no longer exists.", Destructive: true})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Asset updated",
	})
	return c.Redirect(http.StatusSeeOther, "/user/assets/"+strconv.FormatInt(row.ID, 10))
}

// HandleUserAssetDeletionRequest files a deletion request for an owned asset.
// One pending request per asset; filing twice is refused with a toast rather
// than an error page.
func (h *Handlers) HandleUserAssetDeletionRequest(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.NoContent(http.StatusForbidden)
	}
	ctx := c.Request().Context()

	row, found, err := h.loadOwnAsset(c, principal.UserID)
	if err != nil {
		return h.RenderError(c, err)
	}
	if !found {
		return RenderNotFound(c)
	}
	detailPath := "/user/assets/" + strconv.FormatInt(row.ID, 10)

	reason := strings.TrimSpace(c.FormValue("reason"))
	if reason == "" {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Reason required",
			Description: "Tell the reviewers why the asset should go.",
		})
		return c.Redirect(http.StatusSeeOther, detailPath)
	}
	if utf8.RuneCountInString(reason) > 2000 {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Reason too long",
			Description: "Keep the reason under 2000 characters.",
		})
		return c.Redirect(http.StatusSeeOther, detailPath)
	}

	hasPending, err := h.Q.HasPendingDeletionRequestForAsset(ctx, row.ID)
	if err != nil {
		return h.RenderError(c, err)
	}
	if hasPending {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "warning",
			Title:       "Already requested",
			Description: "A deletion request for this asset is waiting for review.",
		})
		return c.Redirect(http.StatusSeeOther, detailPath)
	}

	if _, err := h.Q.CreateDeletionRequest(ctx, db.CreateDeletionRequestParams{
		AssetID:     row.ID,
		AssetName:   row.Name,
		AssetTag:    row.Tag,
		RequestedBy: principal.UserID,
		Reason:      reason,
	}); err != nil {
		return h.RenderError(c, err)
	}

	metrics.DeletionRequestsTotal.WithLabelValues("filed").Inc()
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Request filed",
		Description: "An admin will review the deletion request.",
	})
	return c.Redirect(http.StatusSeeOther, detailPath)
}
