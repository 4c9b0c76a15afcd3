package handlers

import (
	"context"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func assetItem(row db.AssetWithRefsRow) viewmodels.AssetItem {
	owner := "—"
	if row.OwnerEmail.Valid && row.OwnerEmail.String != "" {
		owner = row.OwnerEmail.String
	}
	return viewmodels.AssetItem{
		ID:             row.ID,
		Tag:            row.Tag,
		Name:           row.Name,
		SerialNumber:   row.SerialNumber,
		Status:         row.Status,
		StatusLabel:    assetStatusLabel(row.Status),
		BadgeClass:     assetStatusBadgeClass(row.Status),
		OwnerEmail:     owner,
		DepartmentName: row.DepartmentName,
		CategoryName:   row.CategoryName,
		UpdatedAt:      formatTime(row.UpdatedAt),
	}
}

func assetItems(rows []db.AssetWithRefsRow) []viewmodels.AssetItem {
	items := make([]viewmodels.AssetItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, assetItem(row))
	}
	return items
}

type assetFormInput struct {
	Name         string `form:"name" validate:"required,max=120"`
	SerialNumber string `form:"serial_number" validate:"max=120"`
	Description  string `form:"description" validate:"max=2000"`
	Status       string `form:"status" validate:"required,oneof=in_service in_storage under_repair retired"`
	DepartmentID int64  `form:"department_id" validate:"gt=0"`
	CategoryID   int64  `form:"category_id" validate:"gt=0"`
}

func parseAssetForm(c *echo.Context) assetFormInput {
	departmentID, _ := parseInt64(c.FormValue("department_id"))
	categoryID, _ := parseInt64(c.FormValue("category_id"))
	return assetFormInput{
		Name:         strings.TrimSpace(c.FormValue("name")),
		SerialNumber: strings.TrimSpace(c.FormValue("serial_number")),
		Description:  strings.TrimSpace(c.FormValue("description")),
		Status:       strings.TrimSpace(c.FormValue("status")),
		DepartmentID: departmentID,
		CategoryID:   categoryID,
	}
}

func (in assetFormInput) viewForm() viewmodels.AssetForm {
	return viewmodels.AssetForm{
		Name:         in.Name,
		SerialNumber: in.SerialNumber,
		Description:  in.Description,
		Status:       in.Status,
		DepartmentID: in.DepartmentID,
		CategoryID:   in.CategoryID,
	}
}

func departmentOptions(departments []db.Department, selected int64) []viewmodels.RefOption {
	options := make([]viewmodels.RefOption, 0, len(departments))
	for _, d := range departments {
		options = append(options, viewmodels.RefOption{ID: d.ID, Name: d.Name, Selected: d.ID == selected})
	}
	return options
}

func categoryOptions(categories []db.Category, selected int64) []viewmodels.RefOption {
	options := make([]viewmodels.RefOption, 0, len(categories))
	for _, cat := range categories {
		options = append(options, viewmodels.RefOption{ID: cat.ID, Name: cat.Name, Selected: cat.ID == selected})
	}
	return options
}

// assetFormRefs loads both dropdowns for the asset form, with the form's
// current choices pre-selected.
func (h *Handlers) assetFormRefs(ctx context.Context, form viewmodels.AssetForm) ([]viewmodels.RefOption, []viewmodels.RefOption, error) {
	departments, err := h.Q.ListDepartments(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := h.Q.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return departmentOptions(departments, form.DepartmentID), categoryOptions(categories, form.CategoryID), nil
}
