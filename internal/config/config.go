// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/govalues/money"
)

type Config struct {
	// HTTP server
	Port string

	// Database; empty selects the in-memory store
	DatabaseURL string

	// Display currency for summary amounts
	Currency string

	// Auth; empty secret enables the X-User-ID development fallback
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Logging
	LogLevel  string
	LogFormat string

	// Dev conveniences
	SeedDev bool

	// Auth resolve budget for gated operations
	ResolveTimeout time.Duration
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Currency:    getEnv("CURRENCY", "EUR"),

		JWTSecret:   getEnv("JWT_HS256_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", ""),
		JWTAudience: getEnv("JWT_AUDIENCE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		SeedDev: getEnvBool("SEED_DEV", false),

		ResolveTimeout: getEnvDuration("RESOLVE_TIMEOUT", 5*time.Second),
	}
}

// Validate checks the loaded values and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := money.NewAmountFromMinorUnits(c.Currency, 0); err != nil {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be an ISO 4217 code", c.Currency))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.ResolveTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid resolve timeout %v: must be at least 1 second", c.ResolveTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
