// Package main provides the entry point for the Padel & Palms API server:
// the form relay, AI demos, voice bridge and quote API.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/GitDDAN/padel-palms-proposal/domain/assistant"
	"github.com/GitDDAN/padel-palms-proposal/domain/health"
	"github.com/GitDDAN/padel-palms-proposal/domain/imagegen"
	"github.com/GitDDAN/padel-palms-proposal/domain/metrics"
	"github.com/GitDDAN/padel-palms-proposal/domain/notify"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
	"github.com/GitDDAN/padel-palms-proposal/domain/relay"
	"github.com/GitDDAN/padel-palms-proposal/domain/scheduler"
	"github.com/GitDDAN/padel-palms-proposal/domain/tracing"
	"github.com/GitDDAN/padel-palms-proposal/domain/voice"
	"github.com/GitDDAN/padel-palms-proposal/internal/ai"
	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/server"
	"github.com/GitDDAN/padel-palms-proposal/internal/storage"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

func main() {
	// Load .env files if present. .env.local takes precedence.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		server.Module,
		storage.Module,
		ai.Module,
		tracing.Module,
		metrics.Module,

		// Domain modules
		health.Module,
		notify.Module,
		relay.Module,
		assistant.Module,
		imagegen.Module,
		voice.Module,
		quote.Module,

		// Background probes and cleanup
		scheduler.Module,
	).Run()
}
