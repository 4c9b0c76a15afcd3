package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

func (h *Handlers) renderCategoriesPage(c *echo.Context, opts refPageOptions) error {
	ctx := c.Request().Context()

	layout, err := h.LayoutData(ctx, c, "Categories")
	if err != nil {
		return h.RenderError(c, err)
	}
	rows, err := h.Q.ListCategoriesWithAssetCounts(ctx)
	if err != nil {
		return h.RenderError(c, err)
	}

	items := make([]viewmodels.RefItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, viewmodels.RefItem{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			AssetCount:  row.AssetCount,
			CanDelete:   row.AssetCount == 0,
		})
	}
	return h.RenderComponent(c, views.RefListPage(viewmodels.RefListViewData{
		Layout:   layout,
		Heading:  "Categories",
		Singular: "category",
		BasePath: "/admin/categories",
		Items:    items,
		HasItems: len(items) > 0,
		Form:     opts.form,
		Alert:    opts.alert,
	}))
}

func (h *Handlers) HandleCategories(c *echo.Context) error {
	return h.renderCategoriesPage(c, refPageOptions{})
}

func (h *Handlers) HandleCategoriesCreate(c *echo.Context) error {
	in := parseRefForm(c)
	if err := validate.Struct(in); err != nil {
		return h.renderCategoriesPage(c, refPageOptions{
			form:  viewmodels.RefForm{Name: in.Name, Description: in.Description},
			alert: &viewmodels.Alert{Title: "Check the form", Message: validationMessage(err), Destructive: true},
		})
	}

	cat, err := h.Q.CreateCategory(c.Request().Context(), db.CreateCategoryParams{
		Name:        in.Name,
		Description: in.Description,
	})
	if isUniqueViolation(err) {
		return h.renderCategoriesPage(c, refPageOptions{
			form:  viewmodels.RefForm{Name: in.Name, Description: in.Description},
			alert: &viewmodels.Alert{Title: "Name taken", Message: "A category named " + in.Name + " already exists.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Category added",
		Description: cat.Name+" is ready to use.",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *Handlers) HandleCategoryUpdate(c *echo.Context) error {
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return RenderNotFound(c)
	}
	in := parseRefForm(c)
	if err := validate.Struct(in); err != nil {
		return h.renderCategoriesPage(c, refPageOptions{
			alert: &viewmodels.Alert{Title: "Check the form", Message: validationMessage(err), Destructive: true},
		})
	}

	err := h.Q.UpdateCategory(c.Request().Context(), db.UpdateCategoryParams{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
	})
	if isUniqueViolation(err) {
		return h.renderCategoriesPage(c, refPageOptions{
			alert: &viewmodels.Alert{Title: "Name taken", Message: "A category named " + in.Name + " already exists.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Category updated",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

// HandleCategoryDelete refuses to remove a category that still has assets
// assigned; the schema enforces the same rule.
func (h *Handlers) HandleCategoryDelete(c *echo.Context) error {
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return RenderNotFound(c)
	}

	err := h.Q.DeleteCategory(c.Request().Context(), id)
	if isForeignKeyViolation(err) {
		return h.renderCategoriesPage(c, refPageOptions{
			alert: &viewmodels.Alert{Title: "Category in use", Message: "Reassign its assets before deleting this category.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Category deleted",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}
