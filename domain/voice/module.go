package voice

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/genai"

	"github.com/GitDDAN/padel-palms-proposal/domain/metrics"
	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/server"
)

var Module = fx.Module("voice",
	fx.Provide(newHandlerFromConfig),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(registerLifecycle),
)

func newHandlerFromConfig(cfg *config.Config, client *genai.Client, m *metrics.Metrics, log *slog.Logger) *Handler {
	var connector Connector
	if client != nil {
		connector = NewGeminiConnector(client, cfg.AI.LiveModel, cfg.AI.Voice)
	}
	return NewHandler(connector, m, cfg.AI.MaxVoiceSession, server.AllowOrigin(cfg.AllowedOrigins), log)
}

// RegisterRoutes registers the voice websocket route.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/voice/ws", h.Connect)
}

func registerLifecycle(lc fx.Lifecycle, h *Handler) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			h.Close()
			return nil
		},
	})
}
