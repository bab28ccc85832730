package imagegen

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/genai"

	"github.com/GitDDAN/padel-palms-proposal/domain/metrics"
	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/server"
	"github.com/GitDDAN/padel-palms-proposal/internal/storage"
)

var Module = fx.Module("imagegen",
	fx.Provide(
		newServiceFromConfig,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

func newServiceFromConfig(cfg *config.Config, client *genai.Client, store *storage.Service, m *metrics.Metrics, log *slog.Logger) *Service {
	var gen Generator
	if client != nil {
		gen = NewGeminiGenerator(client, cfg.AI.ImageModel)
	}
	return NewService(gen, store, m, cfg.AI.ImageTimeout, log)
}

// RegisterRoutes registers the image routes behind the AI rate limiter.
func RegisterRoutes(e *echo.Echo, h *Handler, rl *server.RateLimiter) {
	e.POST("/api/images", h.Generate, rl.Middleware())
	e.GET("/api/images/options", h.Options)
}
