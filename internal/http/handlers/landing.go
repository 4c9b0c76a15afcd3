package handlers

import (
	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/http/viewmodels"
	"github.com/assetdesk/assetdesk/internal/http/views"
)

// HandleLanding renders the public landing page. Signed-in visitors never
// reach it; the gate sends them to their home page first.
func (h *Handlers) HandleLanding(c *echo.Context) error {
	layout, err := h.LayoutData(c.Request().Context(), c, "Welcome")
	if err != nil {
		return h.RenderError(c, err)
	}
	return h.RenderComponent(c, views.LandingPage(viewmodels.LandingViewData{Layout: layout}))
}
