package website

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":4002", cfg.Addr())
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Webhook.Timeout)
	assert.Zero(t, cfg.Webhook.RetryCount)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("WEBSITE_PORT", "8080")
	t.Setenv("API_BASE_URL", "https://api.padelpalms.ph/")
	t.Setenv("ORDER_WEBHOOK_URL", "https://hooks.example.com/order")
	t.Setenv("WEBHOOK_RETRY_COUNT", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.padelpalms.ph", cfg.APIBaseURL)
	assert.Equal(t, "https://hooks.example.com/order", cfg.Webhook.URL)
	assert.Equal(t, 2, cfg.Webhook.RetryCount)
}

func TestLoadConfig_NegativeRetries(t *testing.T) {
	t.Setenv("WEBHOOK_RETRY_COUNT", "-1")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "must not be negative")
}
