package scheduler

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/domain/metrics"
	"github.com/GitDDAN/padel-palms-proposal/domain/relay"
	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/server"
)

// Module provides the background probes.
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for creating scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Upstream  *relay.Upstream
	Limiter   *server.RateLimiter
	Metrics   *metrics.Metrics
	Cfg       *config.Config
	Log       *slog.Logger
}

// RegisterTasks registers all scheduled tasks
func RegisterTasks(p TaskParams) error {
	if err := p.Scheduler.AddIntervalTask("rate_limit_sweep", 5*time.Minute,
		NewRateLimitSweepTask(p.Limiter, p.Log).Run); err != nil {
		return err
	}

	if !p.Cfg.Relay.IsConfigured() {
		p.Log.Info("relay upstream not configured, skipping probe")
		return nil
	}
	return p.Scheduler.AddIntervalTask("relay_probe", p.Cfg.Relay.ProbeInterval,
		NewRelayProbeTask(p.Upstream, p.Metrics, p.Log).Run)
}

// RegisterSchedulerLifecycle starts and stops the scheduler with the app.
func RegisterSchedulerLifecycle(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
