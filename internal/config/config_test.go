package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ResolveTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEED_DEV", "true")
	t.Setenv("RESOLVE_TIMEOUT", "10s")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.SeedDev)
	assert.Equal(t, 10*time.Second, cfg.ResolveTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "must be between"},
		{"bad currency", func(c *Config) { c.Currency = "EURO" }, "invalid currency"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
		{"timeout too short", func(c *Config) { c.ResolveTimeout = 10 * time.Millisecond }, "resolve timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
