package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://ponto.example.com/")
	t.Setenv("UPSTREAM_JWT_SECRET", "s1")
	t.Setenv("ADMIN_JWT_SECRET", "s2")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://ponto.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Upstream.Timeout)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone.String())
	assert.Equal(t, "pt-BR", cfg.App.Locale)
	assert.Equal(t, PaymentStoreUpstream, cfg.Payment.Store)
	assert.Equal(t, 300*time.Millisecond, cfg.DateRange.ResetDelay)
	assert.Equal(t, 30*time.Minute, cfg.DateRange.IdleTTL)
	assert.Equal(t, 16, cfg.DateRange.MaxPerSession)
	assert.Equal(t, 8, cfg.Summary.MonthlyFetchConcurrency)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")
	t.Setenv("DATE_RANGE_RESET_DELAY", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PAYMENT_STORE", "SQLite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.UTC.String(), cfg.App.Timezone.String())
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, time.Duration(0), cfg.DateRange.ResetDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, PaymentStoreSQLite, cfg.Payment.Store)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing upstream": {"UPSTREAM_BASE_URL": ""},
		"bad timezone":     {"APP_TIMEZONE": "Mars/Olympus"},
		"bad store":        {"PAYMENT_STORE": "redis"},
		"postgres no pass": {"PAYMENT_STORE": "postgres", "DB_PASSWORD": ""},
		"bad duration":     {"UPSTREAM_TIMEOUT": "soon"},
		"zero concurrency": {"MONTHLY_FETCH_CONCURRENCY": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
