package relay

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/domain/metrics"
	"github.com/GitDDAN/padel-palms-proposal/domain/notify"
	"github.com/GitDDAN/padel-palms-proposal/internal/config"
)

var Module = fx.Module("relay",
	fx.Provide(
		newUpstreamFromConfig,
		newServiceFromConfig,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(registerLifecycle),
)

func newUpstreamFromConfig(cfg *config.Config, log *slog.Logger) *Upstream {
	return NewUpstream(cfg.Relay, log)
}

func newServiceFromConfig(cfg *config.Config, up *Upstream, n *notify.Notifier, m *metrics.Metrics, log *slog.Logger) *Service {
	var notifier Notifier
	if n != nil {
		notifier = n
	}
	return NewService(up, cfg.Relay.ToolName, notifier, m, log)
}

func registerLifecycle(lc fx.Lifecycle, up *Upstream) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return up.Close()
		},
	})
}
