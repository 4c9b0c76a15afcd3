package views

import (
	"testing"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func sampleAssetItem() viewmodels.AssetItem {
	return viewmodels.AssetItem{
		ID:             42,
		Tag:            "9f1c2d3e-4b5a-6c7d-8e9f-0a1b2c3d4e5f",
		Name:           "MacBook Pro 14",
		SerialNumber:   "C02XL0AAJGH5",
		Status:         "in_service",
		StatusLabel:    "In service",
		BadgeClass:     "badge-success",
		OwnerEmail:     "user@example.com",
		DepartmentName: "Engineering",
		CategoryName:   "Laptops",
		UpdatedAt:      "Jan 2, 2026 15:04 UTC",
	}
}

func TestAssetsListPageFilterFormTargetsBasePath(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AssetsListPage(viewmodels.AssetsListViewData{
		Layout:   viewmodels.LayoutData{CSRFToken: "csrf-token-123"},
		BasePath: "/admin/assets",
		StatusOptions: []viewmodels.StatusOption{
			{Value: "in_service", Label: "In service"},
		},
	}))

	assertContains(t, html, `<form method="get" action="/admin/assets" class="filter-form">`)
	assertContains(t, html, `name="q"`)
	assertContains(t, html, `name="status"`)
}

func TestAssetsListPageBulkDeleteControls(t *testing.T) {
	t.Parallel()

	data := viewmodels.AssetsListViewData{
		Layout:     viewmodels.LayoutData{CSRFToken: "csrf-token-123"},
		BasePath:   "/admin/assets",
		Assets:     []viewmodels.AssetItem{sampleAssetItem()},
		HasAssets:  true,
		ShowOwner:  true,
		BulkDelete: true,
		Page:       1,
		TotalPages: 1,
		TotalCount: 1,
	}

	html := renderViewComponent(t, AssetsListPage(data))
	assertContains(t, html, `action="/admin/assets/bulk-delete"`)
	assertContains(t, html, `type="checkbox" name="ids" value="42"`)
	assertContains(t, html, `Delete selected`)
	assertContains(t, html, `user@example.com`)

	data.BulkDelete = false
	data.ShowOwner = false
	html = renderViewComponent(t, AssetsListPage(data))
	assertNotContains(t, html, `bulk-delete`)
	assertNotContains(t, html, `type="checkbox"`)
	assertNotContains(t, html, `user@example.com`)
}

func TestAssetsListPageLinksOwnAssetsToDetail(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AssetsListPage(viewmodels.AssetsListViewData{
		Layout:    viewmodels.LayoutData{CSRFToken: "csrf-token-123"},
		BasePath:  "/user/assets",
		Assets:    []viewmodels.AssetItem{sampleAssetItem()},
		HasAssets: true,
	}))

	assertContains(t, html, `href="/user/assets/42"`)
	assertContains(t, html, `href="/user/assets/new"`)
}

func TestAssetsListPagePaginationCarriesFilters(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, AssetsListPage(viewmodels.AssetsListViewData{
		Layout:       viewmodels.LayoutData{CSRFToken: "csrf-token-123"},
		BasePath:     "/admin/assets",
		Assets:       []viewmodels.AssetItem{sampleAssetItem()},
		HasAssets:    true,
		Query:        "mac",
		StatusFilter: "in_service",
		Page:         2,
		TotalPages:   3,
		TotalCount:   55,
		ShowingFrom:  21,
		ShowingTo:    40,
	}))

	assertContains(t, html, `Showing 21–40 of 55`)
	assertContains(t, html, `href="/admin/assets?page=3&amp;q=mac&amp;status=in_service"`)
	assertContains(t, html, `href="/admin/assets?q=mac&amp;status=in_service"`)
}

func TestAssetsListPageShortensLongTags(t *testing.T) {
	t.Parallel()

	item := sampleAssetItem()
	html := renderViewComponent(t, AssetsListPage(viewmodels.AssetsListViewData{
		Layout:    viewmodels.LayoutData{CSRFToken: "csrf-token-123"},
		BasePath:  "/admin/assets",
		Assets:    []viewmodels.AssetItem{item},
		HasAssets: true,
	}))

	assertContains(t, html, `title="`+item.Tag+`"`)
	assertNotContains(t, html, `<code title="`+item.Tag+`">`+item.Tag+`</code>`)
}
