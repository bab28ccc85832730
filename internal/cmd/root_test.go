package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"config", "catalog", "currency", "output", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "--%s should be registered", name)
	}
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)

	for _, name := range []string{"catalog", "quote", "configure", "currencies", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestQuote_JSON(t *testing.T) {
	out, err := run(t, "quote", "booking-automation", "-o", "json")
	require.NoError(t, err)

	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, []any{"website", "booking-villas", "booking-courts"}, q["selection"])
	assert.Equal(t, "$448", q["monthlyDisplay"])
	assert.Equal(t, "$2500", q["oneTimeDisplay"])
	assert.Equal(t, "USD", q["currency"])
}

func TestQuote_TogglesInOrder(t *testing.T) {
	out, err := run(t, "quote", "booking-automation", "website", "content", "-o", "json")
	require.NoError(t, err)

	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, []any{"content"}, q["selection"], "removing the website removes its dependents")
	assert.Equal(t, "$159", q["monthlyDisplay"])
}

func TestQuote_TableInPesos(t *testing.T) {
	out, err := run(t, "quote", "ai-receptionist", "content", "--currency", "php")
	require.NoError(t, err)

	assert.Contains(t, out, "ai-voice")
	assert.Contains(t, out, "₱25,312/month")
	assert.NotContains(t, out, "One-time:")
}

func TestQuote_OneTimeCaption(t *testing.T) {
	out, err := run(t, "quote", "dashboard", "website")
	require.NoError(t, err)

	assert.Contains(t, out, "One-time: $3000")
	assert.Contains(t, out, "Website build ($2500) + Setup fees ($500)")
}

func TestQuote_EmptySelectionShowsPackage(t *testing.T) {
	out, err := run(t, "quote", "--package", "enterprise")
	require.NoError(t, err)

	assert.Contains(t, out, "Enterprise Solution")
	assert.Contains(t, out, "Multi-location Sync")
	assert.Contains(t, out, "$1899/month")
}

func TestQuote_Errors(t *testing.T) {
	_, err := run(t, "quote", "content", "--currency", "btc")
	assert.ErrorContains(t, err, "unsupported currency")

	_, err = run(t, "quote", "--package", "gold")
	assert.ErrorContains(t, err, "unknown package")

	_, err = run(t, "quote", "content", "-o", "yaml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestQuote_CurrencyFromEnv(t *testing.T) {
	t.Setenv("PANDP_CURRENCY", "EUR")

	out, err := run(t, "quote", "content", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"currency": "EUR"`)
}

func TestQuote_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pandp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency: DKK\noutput: json\n"), 0o600))

	out, err := run(t, "quote", "content", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"currency": "DKK"`)
}

func TestCatalog_Table(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "booking-automation")
	assert.Contains(t, out, "needs website")
	assert.Contains(t, out, "bundle (volume)")
	assert.Contains(t, out, "$2500 one-time")
	assert.Contains(t, out, "Pro Suite ★")
}

func TestCatalog_JSON(t *testing.T) {
	out, err := run(t, "catalog", "-o", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestCatalog_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entries:
  - {id: website, name: Site, price: 1000, oneTime: true}
  - {id: seo, name: SEO Boost, price: 50, requiresWebsite: true}
`), 0o600))

	out, err := run(t, "catalog", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SEO Boost")
	assert.NotContains(t, out, "booking-automation")

	out, err = run(t, "quote", "seo", "--catalog", path, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"website"`)
}

func TestCurrencies(t *testing.T) {
	out, err := run(t, "currencies")
	require.NoError(t, err)

	assert.Contains(t, out, "Philippine Peso")
	assert.Contains(t, out, "56.5")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
}
