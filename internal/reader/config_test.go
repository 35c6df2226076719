package reader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected error when API key is missing")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}

func TestLoadConfig_WhitespaceAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "   ")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for blank API key")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "jina_test_key")
	t.Setenv("READER_HTTP_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("METRICS_ADDR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.APIKey != "jina_test_key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, want 0", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv(APIKeyEnv, "jina_test_key")
	t.Setenv("READER_HTTP_TIMEOUT", "45s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ADDR", "127.0.0.1:9464")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HTTPTimeout != 45*time.Second {
		t.Errorf("HTTPTimeout = %v, want 45s", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
}

func TestLoadConfig_InvalidOptionalValuesIgnored(t *testing.T) {
	t.Setenv(APIKeyEnv, "jina_test_key")
	t.Setenv("READER_HTTP_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, want 0", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	_ = os.Unsetenv(APIKeyEnv)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(APIKeyEnv+"=from_file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv(APIKeyEnv); got != "from_file" {
		t.Errorf("%s = %q, want from_file", APIKeyEnv, got)
	}
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv(APIKeyEnv, "from_env")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(APIKeyEnv+"=from_file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv(APIKeyEnv); got != "from_env" {
		t.Errorf("%s = %q, want from_env", APIKeyEnv, got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should not be an error, got %v", err)
	}
}
