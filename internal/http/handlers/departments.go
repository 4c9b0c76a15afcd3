package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

// refFormInput is shared by the department and category forms; both are a
// name plus an optional description.
type refFormInput struct {
	Name        string `form:"name" validate:"required,max=120"`
	Description string `form:"description" validate:"max=500"`
}

func parseRefForm(c *echo.Context) refFormInput {
	return refFormInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
}

type refPageOptions struct {
	form  viewmodels.RefForm
	alert *viewmodels.Alert
}

func (h *Handlers) renderDepartmentsPage(c *echo.Context, opts refPageOptions) error {
	ctx := c.Request().Context()

	layout, err := h.LayoutData(ctx, c, "Departments")
	if err != nil {
		return h.RenderError(c, err)
	}
	rows, err := h.Q.ListDepartmentsWithAssetCounts(ctx)
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
		Heading:  "Departments",
		Singular: "department",
		BasePath: "/admin/departments",
		Items:    items,
		HasItems: len(items) > 0,
		Form:     opts.form,
		Alert:    opts.alert,
	}))
}

func (h *Handlers) HandleDepartments(c *echo.Context) error {
	return h.renderDepartmentsPage(c, refPageOptions{})
}

func (h *Handlers) HandleDepartmentsCreate(c *echo.Context) error {
	in := parseRefForm(c)
	if err := validate.Struct(in); err != nil {
		return h.renderDepartmentsPage(c, refPageOptions{
			form:  viewmodels.RefForm{Name: in.Name, Description: in.Description},
			alert: &viewmodels.Alert{Title: "Check the form", Message: validationMessage(err), Destructive: true},
		})
	}

	dept, err := h.Q.CreateDepartment(c.Request().Context(), db.CreateDepartmentParams{
		Name:        in.Name,
		Description: in.Description,
	})
	if isUniqueViolation(err) {
		return h.renderDepartmentsPage(c, refPageOptions{
			form:  viewmodels.RefForm{Name: in.Name, Description: in.Description},
			alert: &viewmodels.Alert{Title: "Name taken", Message: "A department named " + in.Name + " already exists.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Department added",
		Description: dept.Name+" is ready to use.",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/departments")
}

func (h *Handlers) HandleDepartmentUpdate(c *echo.Context) error {
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return RenderNotFound(c)
	}
	in := parseRefForm(c)
	if err := validate.Struct(in); err != nil {
		return h.renderDepartmentsPage(c, refPageOptions{
			alert: &viewmodels.Alert{Title: "Check the form", Message: validationMessage(err), Destructive: true},
		})
	}

	err := h.Q.UpdateDepartment(c.Request().Context(), db.UpdateDepartmentParams{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
	})
	if isUniqueViolation(err) {
		return h.renderDepartmentsPage(c, refPageOptions{
			alert: &viewmodels.Alert{Title: "Name taken", Message: "A department named " + in.Name + " already exists.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Department updated",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/departments")
}

// HandleDepartmentDelete refuses to remove a department that still has assets
// assigned; the schema enforces the same rule.
func (h *Handlers) HandleDepartmentDelete(c *echo.Context) error {
	id, ok := parseInt64(c.Param("id"))
	if !ok {
		return RenderNotFound(c)
	}

	err := h.Q.DeleteDepartment(c.Request().Context(), id)
	if isForeignKeyViolation(err) {
		return h.renderDepartmentsPage(c, refPageOptions{
			alert: &viewmodels.Alert{Title: "Department in use", Message: "Reassign its assets before deleting this department.", Destructive: true},
		})
	}
	if err != nil {
		return h.RenderError(c, err)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Department deleted",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/departments")
}
