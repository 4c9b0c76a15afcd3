package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func renderViewComponent(t *testing.T, component templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func TestLayoutEnablesGlobalHTMXBoost(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{
		Title:     "Dashboard",
		CSRFToken: "csrf-token-123",
	}))

	assertContains(t, html, `hx-boost="true"`)
	assertContains(t, html, `X-CSRF-Token`)
	assertContains(t, html, `csrf-token-123`)
}

func TestLayoutLogoutFormOptsOutOfHTMXBoost(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{
		Title:     "Dashboard",
		CSRFToken: "csrf-token-123",
		UserEmail: "admin@example.com",
		SignedIn:  true,
	}))

	assertContains(t, html, `form method="post" action="/logout" hx-boost="false"`)
}

func TestLayoutNavFollowsRole(t *testing.T) {
	t.Parallel()

	adminHTML := renderViewComponent(t, Layout(viewmodels.LayoutData{
		CSRFToken: "csrf-token-123",
		UserEmail: "admin@example.com",
		SignedIn:  true,
		IsAdmin:   true,
	}))
	assertContains(t, adminHTML, `href="/admin"`)
	assertContains(t, adminHTML, `href="/admin/deletion-requests"`)
	assertContains(t, adminHTML, `href="/admin/users"`)

	userHTML := renderViewComponent(t, Layout(viewmodels.LayoutData{
		CSRFToken: "csrf-token-123",
		UserEmail: "user@example.com",
		SignedIn:  true,
	}))
	assertContains(t, userHTML, `href="/user/assets"`)
	assertNotContains(t, userHTML, `href="/admin`)

	anonHTML := renderViewComponent(t, Layout(viewmodels.LayoutData{
		CSRFToken: "csrf-token-123",
	}))
	assertContains(t, anonHTML, `href="/login"`)
	assertNotContains(t, anonHTML, `action="/logout"`)
}

func TestLayoutShowsPendingRequestsBadgeForAdmins(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, Layout(viewmodels.LayoutData{
		CSRFToken:       "csrf-token-123",
		UserEmail:       "admin@example.com",
		SignedIn:        true,
		IsAdmin:         true,
		PendingRequests: 4,
	}))

	assertContains(t, html, `badge-warning`)
	assertContains(t, html, `>4</span>`)

	quietHTML := renderViewComponent(t, Layout(viewmodels.LayoutData{
		CSRFToken: "csrf-token-123",
		UserEmail: "admin@example.com",
		SignedIn:  true,
		IsAdmin:   true,
	}))
	assertNotContains(t, quietHTML, `badge-warning`)
}

func assertContains(t *testing.T, content, want string) {
	t.Helper()
	if !strings.Contains(content, want) {
		t.Fatalf("expected rendered HTML to contain %q", want)
	}
}

func assertNotContains(t *testing.T, content, disallowed string) {
	t.Helper()
	if strings.Contains(content, disallowed) {
		t.Fatalf("expected rendered HTML to not contain %q", disallowed)
	}
}
