package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"VERDANT_PORT", "VERDANT_METRICS_PORT", "VERDANT_ADMIN_TOKEN", "VERDANT_TRUST_PROXY",
	"VERDANT_DATABASE_URL", "VERDANT_HERMES_URL", "VERDANT_WEIGHT_SUM_TOLERANCE",
	"VERDANT_RATE_LIMIT_PER_MINUTE", "VERDANT_LOG_LEVEL", "VERDANT_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "" {
		t.Errorf("expected no admin token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Server.TrustProxy {
		t.Error("expected forwarding headers to be untrusted by default")
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Scoring.SumTolerance != 5 {
		t.Errorf("expected sum tolerance 5, got %f", cfg.Scoring.SumTolerance)
	}
	if cfg.RateLimit.RequestsPerMinute != 120 {
		t.Errorf("expected 120 requests per minute, got %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "verdant.yaml")
	body := []byte(`
server:
  port: 9100
database:
  url: postgres://verdant@db/verdant
scoring:
  sum_tolerance: 2.5
logging:
  format: text
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.URL != "postgres://verdant@db/verdant" {
		t.Errorf("expected database URL from file, got '%s'", cfg.Database.URL)
	}
	if cfg.Scoring.SumTolerance != 2.5 {
		t.Errorf("expected sum tolerance 2.5, got %f", cfg.Scoring.SumTolerance)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VERDANT_PORT", "9000")
	t.Setenv("VERDANT_METRICS_PORT", "9001")
	t.Setenv("VERDANT_ADMIN_TOKEN", "secret-token")
	t.Setenv("VERDANT_TRUST_PROXY", "true")
	t.Setenv("VERDANT_DATABASE_URL", "postgres://localhost/verdant_test")
	t.Setenv("VERDANT_HERMES_URL", "nats://nats:4222")
	t.Setenv("VERDANT_WEIGHT_SUM_TOLERANCE", "10")
	t.Setenv("VERDANT_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("VERDANT_LOG_LEVEL", "debug")
	t.Setenv("VERDANT_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if !cfg.Server.TrustProxy {
		t.Error("expected trust_proxy enabled from env")
	}
	if cfg.Database.URL != "postgres://localhost/verdant_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Scoring.SumTolerance != 10 {
		t.Errorf("expected sum tolerance 10, got %f", cfg.Scoring.SumTolerance)
	}
	if cfg.RateLimit.RequestsPerMinute != 30 {
		t.Errorf("expected 30 requests per minute, got %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VERDANT_PORT", "not-a-port")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8700 {
		t.Errorf("expected default port on malformed env, got %d", cfg.Server.Port)
	}
}
