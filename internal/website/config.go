package website

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
)

// Config holds the website configuration.
type Config struct {
	Port        string `env:"WEBSITE_PORT" envDefault:"4002"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	// APIBaseURL is where the browser reaches the AI demo endpoints.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3001"`

	Webhook config.WebhookConfig
}

// LoadConfig parses the website configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing website config: %w", err)
	}
	if cfg.Webhook.RetryCount < 0 {
		return nil, fmt.Errorf("WEBHOOK_RETRY_COUNT must not be negative")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
