package handlers

import (
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
)

// loadSessionContext runs the context through an in-memory session manager so
// handlers that touch the session can be exercised without the middleware.
func loadSessionContext(t *testing.T, c *echo.Context) *scs.SessionManager {
	t.Helper()

	sessions := scs.New()
	ctx, err := sessions.Load(c.Request().Context(), "")
	if err != nil {
		t.Fatalf("sessions.Load() error = %v", err)
	}
	c.SetRequest(c.Request().WithContext(ctx))
	return sessions
}

func TestHandleLogoutPost(t *testing.T) {
	tests := []struct {
		name       string
		htmx       bool
		wantStatus int
	}{
		{name: "plain form post redirects", htmx: false, wantStatus: http.StatusSeeOther},
		{name: "htmx post uses HX-Redirect", htmx: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "http://example.com/logout")
			if tt.htmx {
				c.Request().Header.Set("HX-Request", "true")
			}
			h := &Handlers{Sessions: loadSessionContext(t, c)}

			if err := h.HandleLogoutPost(c); err != nil {
				t.Fatalf("HandleLogoutPost() error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			target := rec.Header().Get("Location")
			if tt.htmx {
				target = rec.Header().Get("HX-Redirect")
			}
			if target != "/login" {
				t.Fatalf("redirect target = %q, want /login", target)
			}

			if vary := parseVaryHeader(rec.Header().Get(echo.HeaderVary)); vary["hx-request"] != 1 {
				t.Fatalf("Vary header missing hx-request: %v", vary)
			}

			// Both variants leave a sign-out toast for the login page.
			found := false
			for _, ck := range rec.Result().Cookies() {
				if ck.Name == flashToastCookieName && ck.Value != "" {
					found = true
				}
			}
			if !found {
				t.Fatal("sign-out toast cookie not set")
			}
		})
	}
}

func TestHandleLogoutPostWithoutSessions(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "http://example.com/logout")

	h := &Handlers{}
	if err := h.HandleLogoutPost(c); err == nil {
		t.Fatal("HandleLogoutPost() error = nil, want configuration error")
	}
}
