package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds the API server configuration.
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"3001"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Origins allowed to call the API from a browser. Empty allows all.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Largest accepted request body, in echo's size notation.
	BodyLimit string `env:"SERVER_BODY_LIMIT" envDefault:"1M"`

	AI        AIConfig
	Relay     RelayConfig
	Webhook   WebhookConfig
	Email     EmailConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Otel      OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"120s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AIConfig configures the generative AI features.
type AIConfig struct {
	// GoogleAPIKey enables chat, image and voice. Empty means demo mode.
	GoogleAPIKey string `env:"GOOGLE_API_KEY" envDefault:""`

	ChatModel  string `env:"AI_CHAT_MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel string `env:"AI_IMAGE_MODEL" envDefault:"gemini-3-pro-image-preview"`
	LiveModel  string `env:"AI_LIVE_MODEL" envDefault:"gemini-2.5-flash-native-audio-preview-09-2025"`
	Voice      string `env:"AI_LIVE_VOICE" envDefault:"Zephyr"`

	ChatTimeout  time.Duration `env:"AI_CHAT_TIMEOUT" envDefault:"30s"`
	ImageTimeout time.Duration `env:"AI_IMAGE_TIMEOUT" envDefault:"90s"`

	// MaxVoiceSession bounds a single voice call.
	MaxVoiceSession time.Duration `env:"AI_VOICE_MAX_SESSION" envDefault:"10m"`
}

// IsEnabled returns true if AI credentials are configured.
func (a *AIConfig) IsEnabled() bool {
	key := strings.TrimSpace(a.GoogleAPIKey)
	return key != "" && key != "YOUR_ACTUAL_API_KEY_HERE"
}

// RelayConfig configures the form relay to the workflow automation tool.
type RelayConfig struct {
	// Transport is "http" (streamable HTTP) or "stdio".
	Transport string `env:"RELAY_MCP_TRANSPORT" envDefault:"http"`

	// URL of the workflow tool's MCP endpoint (http transport).
	URL string `env:"RELAY_MCP_URL" envDefault:""`

	// Token is sent as a bearer token (http transport).
	Token string `env:"RELAY_MCP_TOKEN" envDefault:""`

	// Command and Args launch a gateway process (stdio transport).
	Command string   `env:"RELAY_MCP_COMMAND" envDefault:""`
	Args    []string `env:"RELAY_MCP_ARGS" envSeparator:" "`

	// ToolName overrides tool discovery.
	ToolName string `env:"RELAY_TOOL_NAME" envDefault:""`

	CallTimeout   time.Duration `env:"RELAY_CALL_TIMEOUT" envDefault:"30s"`
	ProbeInterval time.Duration `env:"RELAY_PROBE_INTERVAL" envDefault:"1m"`
}

// IsConfigured returns true if an upstream is set for the chosen transport.
func (r *RelayConfig) IsConfigured() bool {
	switch r.Transport {
	case "stdio":
		return r.Command != ""
	default:
		return r.URL != ""
	}
}

// WebhookConfig configures direct webhook delivery of order submissions.
type WebhookConfig struct {
	URL        string        `env:"ORDER_WEBHOOK_URL" envDefault:""`
	Timeout    time.Duration `env:"ORDER_WEBHOOK_TIMEOUT" envDefault:"15s"`
	RetryCount int           `env:"WEBHOOK_RETRY_COUNT" envDefault:"0"`
}

// EmailConfig configures the optional sales notification.
type EmailConfig struct {
	Enabled       bool   `env:"EMAIL_ENABLED" envDefault:"false"`
	MailgunDomain string `env:"MAILGUN_DOMAIN" envDefault:""`
	MailgunAPIKey string `env:"MAILGUN_API_KEY" envDefault:""`
	FromEmail     string `env:"EMAIL_FROM_ADDRESS" envDefault:"proposals@padelandpalms.com"`
	FromName      string `env:"EMAIL_FROM_NAME" envDefault:"Padel & Palms"`
	SalesInbox    string `env:"EMAIL_SALES_INBOX" envDefault:""`
}

// IsConfigured returns true if notifications can be sent.
func (e *EmailConfig) IsConfigured() bool {
	return e.Enabled && e.MailgunDomain != "" && e.MailgunAPIKey != "" && e.SalesInbox != ""
}

// StorageConfig configures S3-compatible storage for generated images.
type StorageConfig struct {
	Endpoint  string `env:"STORAGE_ENDPOINT" envDefault:""`
	AccessKey string `env:"STORAGE_ACCESS_KEY" envDefault:""`
	SecretKey string `env:"STORAGE_SECRET_KEY" envDefault:""`
	Region    string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"STORAGE_BUCKET_IMAGES" envDefault:"event-posts"`
	// PublicURL is the base URL objects are served from.
	PublicURL string `env:"STORAGE_PUBLIC_URL" envDefault:""`
}

// Enabled returns true if storage is configured.
func (s *StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}

// RateLimitConfig bounds calls to the AI endpoints per client IP.
type RateLimitConfig struct {
	PerMinute float64 `env:"AI_RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	Burst     int     `env:"AI_RATE_LIMIT_BURST" envDefault:"5"`
}

// NewConfig parses the configuration from the environment.
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.Bool("ai_enabled", cfg.AI.IsEnabled()),
		slog.Bool("relay_configured", cfg.Relay.IsConfigured()),
		slog.String("relay_transport", cfg.Relay.Transport),
		slog.Bool("email_configured", cfg.Email.IsConfigured()),
		slog.Bool("storage_enabled", cfg.Storage.Enabled()),
		slog.Bool("tracing_enabled", cfg.Otel.Enabled()),
	)

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Relay.Transport {
	case "http", "stdio":
	default:
		return fmt.Errorf("RELAY_MCP_TRANSPORT must be http or stdio, got %q", c.Relay.Transport)
	}
	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("AI_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Webhook.RetryCount < 0 {
		return fmt.Errorf("WEBHOOK_RETRY_COUNT must not be negative")
	}
	return nil
}
