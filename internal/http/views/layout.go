package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

const htmxScriptSrc = "https://unpkg.com/htmx.org@1.9.12"

// Layout renders the empty page shell. Pages normally go through
// openLayout/closeLayout; this exists so the shell can be tested alone.
func Layout(layout viewmodels.LayoutData) templ.Component {
	return component(func(hw *htmlWriter) {
		openLayout(hw, layout)
		closeLayout(hw)
	})
}

func openLayout(hw *htmlWriter, layout viewmodels.LayoutData) {
	hw.raw("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	hw.raw("<meta charset=\"utf-8\"/>\n")
	hw.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	hw.raw("<title>")
	if strings.TrimSpace(layout.Title) != "" {
		hw.text(layout.Title)
		hw.raw(" · ")
	}
	hw.raw("AssetDesk</title>\n")
	hw.raw("<link rel=\"stylesheet\" href=\"/static/app.css\"/>\n")
	hw.rawf("<script src=\"%s\" defer></script>\n", htmxScriptSrc)
	hw.raw("</head>\n")

	// Boosted navigation; state-changing forms carry the token in a hidden
	// field as well, so losing the header is harmless.
	hw.raw(`<body hx-boost="true" hx-headers='{"X-CSRF-Token":"`)
	hw.text(layout.CSRFToken)
	hw.raw("\"}'>\n")

	writeTopbar(hw, layout)
	writeToast(hw, layout.Toast)
	hw.raw("<main class=\"container\">\n")
}

func closeLayout(hw *htmlWriter) {
	hw.raw("\n</main>\n</body>\n</html>\n")
}

func writeTopbar(hw *htmlWriter, layout viewmodels.LayoutData) {
	hw.raw(`<header class="topbar">`)
	hw.raw(`<a class="brand" href="/">AssetDesk</a>`)

	hw.raw(`<nav class="nav">`)
	switch {
	case layout.IsAdmin:
		navLink(hw, layout, "/admin", "Dashboard", true)
		navLink(hw, layout, "/admin/assets", "Assets", false)
		writeRequestsNavLink(hw, layout)
		navLink(hw, layout, "/admin/departments", "Departments", false)
		navLink(hw, layout, "/admin/categories", "Categories", false)
		navLink(hw, layout, "/admin/users", "Users", false)
	case layout.SignedIn:
		navLink(hw, layout, "/user", "Overview", true)
		navLink(hw, layout, "/user/assets", "My assets", false)
	}
	hw.raw(`</nav>`)

	if layout.SignedIn {
		hw.raw(`<div class="user-box">`)
		hw.raw(`<span class="user-email"`)
		hw.attr("title", HumanizeAuthUserRole(layout.UserRole))
		hw.raw(`>`)
		hw.text(layout.UserEmail)
		hw.raw(`</span>`)
		hw.raw(`<form method="post" action="/logout" hx-boost="false">`)
		csrfField(hw, layout.CSRFToken)
		hw.raw(`<button type="submit" class="btn-ghost">Sign out</button>`)
		hw.raw(`</form>`)
		hw.raw(`</div>`)
	} else {
		hw.raw(`<a class="btn-sm-primary" href="/login">Sign in</a>`)
	}
	hw.raw("</header>\n")
}

func navLink(hw *htmlWriter, layout viewmodels.LayoutData, href, label string, exact bool) {
	current := AriaCurrent(layout.ActivePath, href)
	if exact {
		current = AriaCurrentExact(layout.ActivePath, href)
	}

	hw.raw(`<a class="nav-link"`)
	hw.attr("href", href)
	if current != "" {
		hw.attr("aria-current", current)
	}
	hw.raw(`>`)
	hw.text(label)
	hw.raw(`</a>`)
}

func writeRequestsNavLink(hw *htmlWriter, layout viewmodels.LayoutData) {
	hw.raw(`<a class="nav-link" href="/admin/deletion-requests"`)
	if current := AriaCurrent(layout.ActivePath, "/admin/deletion-requests"); current != "" {
		hw.attr("aria-current", current)
	}
	hw.raw(`>Requests`)
	if layout.PendingRequests > 0 {
		hw.raw(`<span class="badge badge-warning">`)
		hw.text(FormatInt64(layout.PendingRequests))
		hw.raw(`</span>`)
	}
	hw.raw(`</a>`)
}

func writeToast(hw *htmlWriter, toast *viewmodels.ToastViewData) {
	if toast == nil {
		return
	}
	hw.raw(`<div class="toast toast-`)
	hw.text(toast.Category)
	hw.raw(`" role="status" aria-live="polite" data-toast>`)
	if toast.Title != "" {
		hw.raw(`<strong>`)
		hw.text(toast.Title)
		hw.raw(`</strong>`)
	}
	if toast.Description != "" {
		hw.raw(`<span>`)
		hw.text(toast.Description)
		hw.raw(`</span>`)
	}
	hw.raw("</div>\n")
}

func writeAlert(hw *htmlWriter, alert *viewmodels.Alert) {
	if alert == nil {
		return
	}
	class := "alert"
	if alert.Destructive {
		class = "alert alert-destructive"
	}
	hw.raw(`<div class="` + class + `"`)
	hw.attr("role", AlertRole(alert.Destructive))
	hw.attr("aria-live", AlertAriaLive(alert.Destructive))
	hw.raw(`><strong>`)
	hw.text(alert.Title)
	hw.raw(`</strong> `)
	hw.text(alert.Message)
	hw.raw("</div>\n")
}

func csrfField(hw *htmlWriter, token string) {
	hw.raw(`<input type="hidden" name="csrf"`)
	hw.attr("value", token)
	hw.raw(`/>`)
}

func pageTitle(hw *htmlWriter, title string) {
	hw.raw(`<h1 class="page-title">`)
	hw.text(title)
	hw.raw("</h1>\n")
}

// writePagination renders the "Showing x–y of z" line plus prev/next links
// that keep the current filters.
func writePagination(hw *htmlWriter, basePath, query, status string, page, totalPages int, totalCount int64, from, to int) {
	if totalCount == 0 {
		return
	}
	hw.raw(`<div class="pagination">`)
	hw.raw(`<span class="pagination-info">Showing `)
	hw.text(FormatInt(from))
	hw.raw("–")
	hw.text(FormatInt(to))
	hw.raw(" of ")
	hw.text(FormatInt64(totalCount))
	hw.raw(`</span>`)

	if totalPages > 1 {
		if page > 1 {
			hw.raw(`<a class="pagination-link"`)
			hw.attr("href", ListURL(basePath, query, status, page-1))
			hw.raw(`>Previous</a>`)
		}
		hw.raw(`<span class="pagination-page">Page `)
		hw.text(FormatInt(page))
		hw.raw(" of ")
		hw.text(FormatInt(totalPages))
		hw.raw(`</span>`)
		if page < totalPages {
			hw.raw(`<a class="pagination-link"`)
			hw.attr("href", ListURL(basePath, query, status, page+1))
			hw.raw(`>Next</a>`)
		}
	}
	hw.raw("</div>\n")
}
