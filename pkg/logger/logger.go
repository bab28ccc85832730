// Package logger builds the process-wide slog.Logger and a few attribute helpers
// shared by every package.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
)

// NewLogger creates a logger configured from LOG_LEVEL and GO_ENV.
// Production (GO_ENV=production) logs JSON; everything else logs text.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv()}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Scope tags log lines with the component that emitted them.
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error wraps err as an attribute under the "error" key.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
