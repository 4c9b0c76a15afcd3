package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

func TestFlashToastRoundTrip(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext(http.MethodPost, "http://example.com/admin/departments")
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Department added",
		Description: "Engineering is ready for assets.",
	})

	cookies := rec.Result().Cookies()
	var flash *http.Cookie
	for _, ck := range cookies {
		if ck.Name == flashToastCookieName {
			flash = ck
		}
	}
	if flash == nil {
		t.Fatal("flash cookie not set")
	}
	if !flash.HttpOnly {
		t.Error("flash cookie should be HttpOnly")
	}

	// A follow-up request carrying the cookie pops the toast once.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/admin/departments", nil)
	req.AddCookie(&http.Cookie{Name: flash.Name, Value: flash.Value})
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req, rec2)

	toast := popFlashToast(c2)
	if toast == nil {
		t.Fatal("popFlashToast() = nil, want toast")
	}
	if toast.Category != "success" || toast.Title != "Department added" {
		t.Fatalf("toast = %+v", toast)
	}

	cleared := false
	for _, ck := range rec2.Result().Cookies() {
		if ck.Name == flashToastCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("popFlashToast should expire the cookie")
	}
}

func TestSetFlashToastSkipsEmptyToast(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext(http.MethodPost, "http://example.com/")
	setFlashToast(c, viewmodels.ToastViewData{Category: "success"})

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flashToastCookieName {
			t.Fatal("empty toast should not set a cookie")
		}
	}
}

func TestPopFlashToastIgnoresGarbage(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.AddCookie(&http.Cookie{Name: flashToastCookieName, Value: "not base64!!"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if toast := popFlashToast(c); toast != nil {
		t.Fatalf("popFlashToast() = %+v, want nil", toast)
	}
}

func TestNormalizeToastCategory(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"success":  "success",
		" ERROR ":  "error",
		"warning":  "warning",
		"info":     "info",
		"shouting": "info",
		"":         "info",
	}
	for in, want := range cases {
		if got := normalizeToastCategory(in); got != want {
			t.Errorf("normalizeToastCategory(%q) = %q, want %q", in, got, want)
		}
	}
}
