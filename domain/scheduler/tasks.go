package scheduler

import (
	"context"
	"log/slog"
)

// Pinger is the relay upstream as seen by the probe.
type Pinger interface {
	Ping(ctx context.Context) error
	Connected() bool
}

// ConnectionGauge publishes the upstream connection flag.
type ConnectionGauge interface {
	SetRelayConnected(connected bool)
}

// RelayProbeTask keeps the relay's connected flag honest by pinging the
// upstream. A failed ping evicts the connection.
type RelayProbeTask struct {
	upstream Pinger
	gauge    ConnectionGauge
	log      *slog.Logger
}

// NewRelayProbeTask creates the probe.
func NewRelayProbeTask(upstream Pinger, gauge ConnectionGauge, log *slog.Logger) *RelayProbeTask {
	return &RelayProbeTask{upstream: upstream, gauge: gauge, log: log}
}

// Run pings once.
func (t *RelayProbeTask) Run(ctx context.Context) error {
	err := t.upstream.Ping(ctx)
	t.gauge.SetRelayConnected(t.upstream.Connected())
	return err
}

// Sweeper drops idle per-client state.
type Sweeper interface {
	Sweep() int
}

// RateLimitSweepTask forgets idle rate limit buckets.
type RateLimitSweepTask struct {
	limiter Sweeper
	log     *slog.Logger
}

// NewRateLimitSweepTask creates the sweep task.
func NewRateLimitSweepTask(limiter Sweeper, log *slog.Logger) *RateLimitSweepTask {
	return &RateLimitSweepTask{limiter: limiter, log: log}
}

// Run sweeps once.
func (t *RateLimitSweepTask) Run(ctx context.Context) error {
	if n := t.limiter.Sweep(); n > 0 {
		t.log.Debug("swept idle rate limiters", slog.Int("removed", n))
	}
	return nil
}
