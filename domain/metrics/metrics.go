package metrics

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(New),
	fx.Invoke(RegisterRoutes),
)

// Metrics are the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	submissions    *prometheus.CounterVec
	chatRequests   *prometheus.CounterVec
	imageRequests  *prometheus.CounterVec
	imageDuration  prometheus.Histogram
	voiceSessions  *prometheus.CounterVec
	voiceActive    prometheus.Gauge
	relayConnected prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pandp_form_submissions_total",
			Help: "Form submissions relayed to the workflow tool, by outcome",
		}, []string{"outcome"}),
		chatRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pandp_chat_requests_total",
			Help: "Receptionist chat requests, by outcome",
		}, []string{"outcome"}),
		imageRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pandp_image_generations_total",
			Help: "Event image generations, by outcome",
		}, []string{"outcome"}),
		imageDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pandp_image_generation_seconds",
			Help:    "Time spent generating and compositing an event image",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 60, 90},
		}),
		voiceSessions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pandp_voice_sessions_total",
			Help: "Voice concierge sessions, by how they ended",
		}, []string{"outcome"}),
		voiceActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "pandp_voice_sessions_active",
			Help: "Voice concierge sessions currently connected",
		}),
		relayConnected: f.NewGauge(prometheus.GaugeOpts{
			Name: "pandp_relay_upstream_connected",
			Help: "1 when the workflow MCP upstream is connected",
		}),
	}
}

// RecordSubmission counts a relayed form.
func (m *Metrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// RecordChat counts a chat request.
func (m *Metrics) RecordChat(outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(outcome).Inc()
}

// RecordImage counts an image generation and its duration.
func (m *Metrics) RecordImage(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.imageRequests.WithLabelValues(outcome).Inc()
	m.imageDuration.Observe(took.Seconds())
}

// VoiceStarted marks a voice session as connected.
func (m *Metrics) VoiceStarted() {
	if m == nil {
		return
	}
	m.voiceActive.Inc()
}

// VoiceEnded marks a voice session as finished.
func (m *Metrics) VoiceEnded(outcome string) {
	if m == nil {
		return
	}
	m.voiceActive.Dec()
	m.voiceSessions.WithLabelValues(outcome).Inc()
}

// SetRelayConnected publishes the upstream connection flag.
func (m *Metrics) SetRelayConnected(connected bool) {
	if m == nil {
		return
	}
	v := 0.0
	if connected {
		v = 1
	}
	m.relayConnected.Set(v)
}

// Registry exposes the registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterRoutes serves /metrics.
func RegisterRoutes(e *echo.Echo, m *Metrics) {
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))
}
