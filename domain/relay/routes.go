package relay

import "github.com/labstack/echo/v4"

// RegisterRoutes registers the relay routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/api/submit-form", h.SubmitForm)
}
