package config

import (
	"testing"
)

func TestLoad_RequiresWebhookToken(t *testing.T) {
	t.Setenv("CHAINLOOP_WEBHOOK_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when CHAINLOOP_WEBHOOK_TOKEN is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHAINLOOP_WEBHOOK_TOKEN", "secret-token")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MAX_BODY_BYTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.WebhookToken != "secret-token" {
		t.Errorf("WebhookToken = %q, want %q", cfg.WebhookToken, "secret-token")
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.MaxBodyBytes, int64(DefaultMaxBodyBytes))
	}
	if cfg.DatabaseURL == "" {
		t.Error("expected a default DATABASE_URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CHAINLOOP_WEBHOOK_TOKEN", "t")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Errorf("MaxBodyBytes = %d, want 1024", cfg.MaxBodyBytes)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins length = %d, want 2", len(cfg.CORSOrigins))
	}
}

func TestLoad_RejectsNonPositiveBodyLimit(t *testing.T) {
	t.Setenv("CHAINLOOP_WEBHOOK_TOKEN", "t")
	t.Setenv("MAX_BODY_BYTES", "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for negative MAX_BODY_BYTES")
	}
}
