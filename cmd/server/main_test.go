package main

import (
	"testing"
	"time"

	"madiskarte.ai/cmd/server/llm"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "50051")
	t.Setenv("APP_ENV", "test")
	t.Setenv("SESSION_CLEANUP_INTERVAL", "5m")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_BASE_URL", "")
	t.Setenv("TLS_CERT_FILE", "")
	t.Setenv("TLS_KEY_FILE", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := loadConfig(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.port != 50051 || cfg.env != "test" {
		t.Errorf("unexpected port/env: %d %q", cfg.port, cfg.env)
	}
	if cfg.sessionCleanupInterval != 5*time.Minute || cfg.sessionIdleTimeout != 30*time.Minute {
		t.Errorf("unexpected session durations: %v %v", cfg.sessionCleanupInterval, cfg.sessionIdleTimeout)
	}
	if cfg.provider != llm.KindGemini {
		t.Errorf("expected gemini provider by default, got %q", cfg.provider)
	}
	if cfg.model != llm.DefaultModel {
		t.Errorf("expected default model, got %q", cfg.model)
	}
	if cfg.metricsPort != 0 {
		t.Errorf("expected metrics disabled, got port %d", cfg.metricsPort)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing port", "PORT", ""},
		{"bad port", "PORT", "grpc"},
		{"missing env", "APP_ENV", ""},
		{"bad cleanup interval", "SESSION_CLEANUP_INTERVAL", "often"},
		{"zero idle timeout", "SESSION_IDLE_TIMEOUT", "0s"},
		{"negative metrics port", "METRICS_PORT", "-1"},
		{"cert without key", "TLS_CERT_FILE", "server.crt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := loadConfig(testLogger()); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_PROVIDER", llm.KindEcho)
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("METRICS_PORT", "9090")

	cfg, err := loadConfig(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.provider != llm.KindEcho || cfg.model != "gemini-2.5-pro" || cfg.metricsPort != 9090 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
