package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

var Module = fx.Module("tracing",
	fx.Provide(NewProvider),
	fx.Invoke(registerShutdown),
	fx.Invoke(RegisterMiddleware),
)

// untracedPaths are probes and the voice socket, whose spans would last the
// whole call.
var untracedPaths = map[string]bool{
	"/health":       true,
	"/healthz":      true,
	"/ready":        true,
	"/metrics":      true,
	"/api/voice/ws": true,
}

// Provider owns the exporting tracer provider. A zero Provider means tracing
// is off and the global provider is a no-op.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// NewProvider sets the global tracer provider from cfg.Otel.
func NewProvider(cfg *config.Config, log *slog.Logger) (*Provider, error) {
	log = log.With(logger.Scope("tracing"))
	oc := cfg.Otel

	if !oc.Enabled() {
		log.Debug("span export off")
		otel.SetTracerProvider(noop.NewTracerProvider())
		return &Provider{}, nil
	}

	exp, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpointURL(oc.ExporterEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(serviceResource(oc.ServiceName, log)),
		sdktrace.WithSampler(sampler(oc.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	log.Info("exporting spans",
		slog.String("endpoint", oc.ExporterEndpoint),
		slog.String("service", oc.ServiceName),
		slog.Float64("sampling_rate", oc.SamplingRate),
	)
	return &Provider{sdk: tp}, nil
}

func serviceResource(name string, log *slog.Logger) *resource.Resource {
	res, err := resource.New(context.Background(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(semconv.ServiceName(name)),
		resource.WithFromEnv(),
	)
	if err != nil {
		log.Warn("resource detection failed", logger.Error(err))
		return resource.Empty()
	}
	return res
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

func registerShutdown(lc fx.Lifecycle, p *Provider) {
	lc.Append(fx.Hook{OnStop: p.Shutdown})
}

// RegisterMiddleware traces API requests when export is on.
func RegisterMiddleware(e *echo.Echo, p *Provider, cfg *config.Config) {
	if !p.Enabled() {
		return
	}
	e.Use(otelecho.Middleware(cfg.Otel.ServiceName, otelecho.WithSkipper(skipTracing)))
}

func skipTracing(c echo.Context) bool {
	return untracedPaths[c.Request().URL.Path]
}
