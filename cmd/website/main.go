// Package main serves the Padel & Palms landing page and configurator.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/order"
	"github.com/GitDDAN/padel-palms-proposal/internal/website"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	log := logger.NewLogger()

	cfg, err := website.LoadConfig()
	if err != nil {
		log.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	webhook := order.NewWebhookClient(order.WebhookOptions{
		URL:        cfg.Webhook.URL,
		Timeout:    cfg.Webhook.Timeout,
		RetryCount: cfg.Webhook.RetryCount,
	}, log)
	if !webhook.Configured() {
		log.Warn("ORDER_WEBHOOK_URL not set, order form will report unavailable")
	}

	h := website.NewHandler(catalog.Default(), webhook, cfg.APIBaseURL, log)
	router, err := website.NewRouter(h)
	if err != nil {
		log.Error("failed to build router", logger.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("website starting", slog.String("addr", srv.Addr), slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("website failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", logger.Error(err))
	}
}
