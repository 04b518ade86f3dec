package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileAndEnvOverrides(t *testing.T) {
	t.Setenv("SHOPFRONT_API_BASE_URL", "http://api.example.com/api")
	t.Setenv("SHOPFRONT_REQUEST_TIMEOUT_SECONDS", "12")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
apiBaseURL: "http://localhost:5000/api"
logLevel: "debug"
sessionDir: "/tmp/shopfront-test"
redisAddr: "localhost:6379"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "http://api.example.com/api" {
		t.Fatalf("apiBaseURL = %q, want env override", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 12 {
		t.Fatalf("requestTimeoutSeconds = %d, want 12", cfg.RequestTimeoutSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("logLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.SessionDir != "/tmp/shopfront-test" {
		t.Fatalf("sessionDir = %q", cfg.SessionDir)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redisAddr = %q", cfg.RedisAddr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Fatalf("apiBaseURL default = %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("logLevel default = %q", cfg.LogLevel)
	}
	if cfg.RequestTimeoutSeconds != 5 {
		t.Fatalf("requestTimeoutSeconds default = %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.SessionDir == "" {
		t.Fatalf("sessionDir default empty")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("apiBaseURL: [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected parse error")
	}
}
