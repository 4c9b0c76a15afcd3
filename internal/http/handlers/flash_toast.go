package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
)

// Flash toasts survive exactly one redirect: the POST handler sets the cookie,
// the page it redirects to pops it.
const flashToastCookieName = "ad_toast"

func flashToastCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     flashToastCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}

// trimToast normalizes a toast in place and reports whether anything is left
// to show.
func trimToast(toast *viewmodels.ToastViewData) bool {
	toast.Category = normalizeToastCategory(toast.Category)
	toast.Title = strings.TrimSpace(toast.Title)
	toast.Description = strings.TrimSpace(toast.Description)
	return toast.Title != "" || toast.Description != ""
}

func setFlashToast(c *echo.Context, toast viewmodels.ToastViewData) {
	if !trimToast(&toast) {
		return
	}
	payload, err := json.Marshal(toast)
	if err != nil {
		return
	}
	c.SetCookie(flashToastCookie(base64.RawURLEncoding.EncodeToString(payload), 30))
}

func popFlashToast(c *echo.Context) *viewmodels.ToastViewData {
	cookie, err := c.Cookie(flashToastCookieName)
	if err != nil || cookie == nil {
		return nil
	}

	// Expire the cookie up front so even an undecodable value is shown at
	// most once.
	c.SetCookie(flashToastCookie("", -1))

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var toast viewmodels.ToastViewData
	if err := json.Unmarshal(raw, &toast); err != nil {
		return nil
	}
	if !trimToast(&toast) {
		return nil
	}
	return &toast
}

func normalizeToastCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case "success", "error", "warning":
		return category
	default:
		return "info"
	}
}
