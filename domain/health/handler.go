package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/version"
)

// UpstreamStatus reports whether the workflow MCP upstream is connected.
type UpstreamStatus interface {
	Connected() bool
}

// Handler handles health check requests
type Handler struct {
	upstream UpstreamStatus
	cfg      *config.Config
	startAt  time.Time

	getMemStats func(context.Context) (*mem.VirtualMemoryStat, error)
	getLoadAvg  func(context.Context) (*load.AvgStat, error)
}

// NewHandler creates a new health handler
func NewHandler(upstream UpstreamStatus, cfg *config.Config) *Handler {
	return &Handler{
		upstream:    upstream,
		cfg:         cfg,
		startAt:     time.Now(),
		getMemStats: mem.VirtualMemoryWithContext,
		getLoadAvg:  load.AvgWithContext,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string           `json:"status"`
	MCPConnected bool             `json:"mcpConnected"`
	Timestamp    string           `json:"timestamp"`
	Uptime       string           `json:"uptime"`
	Version      string           `json:"version"`
	Checks       map[string]Check `json:"checks"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health reports liveness plus the upstream flag. The relay being
// disconnected does not make the service unhealthy: it connects lazily.
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	connected := h.upstream.Connected()

	relay := Check{Status: "connected"}
	switch {
	case !h.cfg.Relay.IsConfigured():
		relay = Check{Status: "disabled", Message: "no workflow upstream configured"}
	case !connected:
		relay = Check{Status: "disconnected", Message: "connects on next submission"}
	}

	ai := Check{Status: "enabled"}
	if !h.cfg.AI.IsEnabled() {
		ai = Check{Status: "demo", Message: "GOOGLE_API_KEY not set"}
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		MCPConnected: connected,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Uptime:       time.Since(h.startAt).String(),
		Version:      version.Version,
		Checks: map[string]Check{
			"relay": relay,
			"ai":    ai,
		},
	})
}

// Healthz returns a simple health check (for k8s liveness probe)
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready returns readiness status. The service has no hard dependencies, so it
// is ready as soon as it serves.
func (h *Handler) Ready(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ready",
	})
}

// Debug returns runtime and host information (not in production)
func (h *Handler) Debug(c echo.Context) error {
	if h.cfg.IsProduction() {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	out := map[string]any{
		"environment": h.cfg.Environment,
		"debug":       h.cfg.Debug,
		"build":       version.Info(),
		"go_version":  runtime.Version(),
		"goroutines":  runtime.NumGoroutine(),
		"num_cpu":     runtime.NumCPU(),
		"memory": map[string]any{
			"alloc_mb":       ms.Alloc / 1024 / 1024,
			"total_alloc_mb": ms.TotalAlloc / 1024 / 1024,
			"sys_mb":         ms.Sys / 1024 / 1024,
			"num_gc":         ms.NumGC,
		},
	}

	host := map[string]any{}
	if vm, err := h.getMemStats(ctx); err == nil {
		host["memory_used_percent"] = vm.UsedPercent
		host["memory_total_mb"] = vm.Total / 1024 / 1024
	} else {
		host["memory_error"] = err.Error()
	}
	if avg, err := h.getLoadAvg(ctx); err == nil {
		host["load"] = map[string]float64{"1m": avg.Load1, "5m": avg.Load5, "15m": avg.Load15}
	} else {
		host["load_error"] = err.Error()
	}
	out["host"] = host

	return c.JSON(http.StatusOK, out)
}
