package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// APIKeyEnv names the environment variable holding the reader credential.
const APIKeyEnv = "JINAAI_API_KEY"

// Config holds reader service settings. It is built once at startup and
// never modified afterwards.
type Config struct {
	// APIKey is sent as a bearer token on every request
	APIKey string

	// HTTPTimeout caps a whole upstream request. Zero means no client-side
	// limit; the upstream honours the per-call timeout argument instead.
	HTTPTimeout time.Duration

	// LogLevel for the server logger
	LogLevel slog.Level

	// MetricsAddr is the listen address for the Prometheus endpoint (optional)
	MetricsAddr string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiKey := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if apiKey == "" {
		return nil, errors.New(APIKeyEnv + " environment variable is required")
	}

	var timeout time.Duration
	if t := os.Getenv("READER_HTTP_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			timeout = d
		}
	}

	level := slog.LevelInfo
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(l)); err == nil {
			level = parsed
		}
	}

	return &Config{
		APIKey:      apiKey,
		HTTPTimeout: timeout,
		LogLevel:    level,
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}, nil
}

// LoadDotEnv loads variables from an env file into the process environment.
// A missing file is not an error. Variables already set are left untouched.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
