package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

var Module = fx.Module("server",
	fx.Provide(NewEcho),
	fx.Provide(NewRateLimiter),
	fx.Invoke(StartServer),
)

// EchoParams are the dependencies for creating an Echo instance
type EchoParams struct {
	fx.In

	Config *config.Config
	Log    *slog.Logger
}

// NewEcho builds the API router: JSON errors, CORS for the landing page
// origins, body limits, request logging and panic recovery.
func NewEcho(p EchoParams) *echo.Echo {
	cfg := p.Config
	log := p.Log.With(logger.Scope("http"))

	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = !cfg.Debug
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(p.Log)

	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOriginFunc: AllowOrigin(cfg.AllowedOrigins),
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:    []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}),
		middleware.Secure(),
		middleware.BodyLimit(cfg.BodyLimit),
		middleware.RequestID(),
		requestLogger(log),
		recoverer(log),
	)

	return e
}

// requestLogger logs one line per request. Probes are skipped.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:      isProbe,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("ip", c.RealIP()),
			}
			if v.Error != nil {
				log.Error("request failed", append(attrs, logger.Error(v.Error))...)
				return nil
			}
			log.Info("request", attrs...)
			return nil
		},
	})
}

func recoverer(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered",
				slog.String("path", c.Request().URL.Path),
				logger.Error(err),
				slog.String("stack", string(stack)),
			)
			return err
		},
	})
}

func isProbe(c echo.Context) bool {
	switch c.Request().URL.Path {
	case "/health", "/healthz", "/ready", "/metrics":
		return true
	}
	return false
}

// AllowOrigin returns the origin check shared by CORS and the voice
// websocket. An empty list allows any origin.
func AllowOrigin(allowed []string) func(string) (bool, error) {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(origin string) (bool, error) {
		if len(set) == 0 {
			return true, nil
		}
		_, ok := set[origin]
		return ok, nil
	}
}

// StartServer starts the HTTP server with graceful shutdown
func StartServer(lc fx.Lifecycle, e *echo.Echo, cfg *config.Config, log *slog.Logger) {
	log = log.With(logger.Scope("server"))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerAddress, cfg.ServerPort),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting HTTP server",
				slog.String("address", server.Addr),
				slog.String("environment", cfg.Environment),
			)

			go func() {
				if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
					log.Error("server error", logger.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down HTTP server")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()

			return e.Shutdown(shutdownCtx)
		},
	})
}
