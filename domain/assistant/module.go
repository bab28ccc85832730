package assistant

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/genai"

	"github.com/GitDDAN/padel-palms-proposal/domain/metrics"
	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/server"
)

var Module = fx.Module("assistant",
	fx.Provide(
		newServiceFromConfig,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

func newServiceFromConfig(cfg *config.Config, client *genai.Client, m *metrics.Metrics, log *slog.Logger) *Service {
	var gen Generator
	if client != nil {
		gen = NewGeminiGenerator(client, cfg.AI.ChatModel)
	}
	return NewService(gen, cfg.AI.ChatTimeout, m, log)
}

// RegisterRoutes registers the chat routes behind the AI rate limiter.
func RegisterRoutes(e *echo.Echo, h *Handler, rl *server.RateLimiter) {
	e.POST("/api/chat", h.Chat, rl.Middleware())
	e.GET("/api/chat/greeting", h.Greeting)
}
