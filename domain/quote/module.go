package quote

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

var Module = fx.Module("quote",
	fx.Provide(
		catalog.Default,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

// RegisterRoutes registers the catalog and pricing routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/catalog", h.Catalog)
	e.POST("/api/quote", h.Quote)
	e.POST("/api/configurator/events", h.Event)
}
