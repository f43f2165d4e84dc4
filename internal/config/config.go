// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultMaxBodyBytes is the request body ceiling for webhook ingestion.
// Chainloop attestation payloads can carry large in-toto statements.
const DefaultMaxBodyBytes = 50 * 1024 * 1024 // 50MB

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    int
	BaseURL string

	// Database
	DatabaseURL string

	// WebhookToken is the shared secret required on webhook ingestion.
	// Compared for equality against the token query parameter.
	WebhookToken string

	// MaxBodyBytes caps the webhook request body size.
	MaxBodyBytes int64

	// CORS
	CORSOrigins []string
}

// Load reads configuration from environment variables.
// CHAINLOOP_WEBHOOK_TOKEN is required: without it the service would
// silently accept every token, so startup fails fast instead.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvInt("PORT", 8080),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "file:chainloop.db?_journal=WAL&_timeout=5000"),
		WebhookToken: getEnv("CHAINLOOP_WEBHOOK_TOKEN", ""),
		MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		CORSOrigins:  getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}

	if cfg.WebhookToken == "" {
		return nil, fmt.Errorf("CHAINLOOP_WEBHOOK_TOKEN is required")
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
