// Package ai constructs the shared Gemini client.
package ai

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
	"google.golang.org/genai"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
)

var Module = fx.Module("ai",
	fx.Provide(NewClient),
)

// NewClient returns the Gemini API client, or nil when no API key is set.
// Every AI feature treats a nil client as demo mode.
func NewClient(cfg *config.Config, log *slog.Logger) (*genai.Client, error) {
	if !cfg.AI.IsEnabled() {
		log.Warn("GOOGLE_API_KEY not set, AI features run in demo mode")
		return nil, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.AI.GoogleAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return client, nil
}
