// Jina Reader MCP Server - A Model Context Protocol server for the Jina Reader API
// Exposes a single read_url tool that converts any URL to LLM-friendly text
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/jina-reader-mcp-server/internal/reader"
	"github.com/olgasafonova/jina-reader-mcp-server/metrics"
	"github.com/olgasafonova/jina-reader-mcp-server/tools"
	"github.com/olgasafonova/jina-reader-mcp-server/tracing"
)

const (
	ServerName = "jina-reader-mcp-server"

	// StartupNotice is written to stderr once the server is serving stdio
	StartupNotice = "Jina Reader MCP server running on stdio"
)

// ServerVersion is set at build time with -ldflags "-X main.ServerVersion=..."
var ServerVersion = "1.0.0"

const serverInstructions = `Jina Reader MCP Server converts web pages into LLM-friendly text.

Available tools:
- read_url: Fetch a URL through Jina Reader and return its text content

Configure via environment variables:
- JINAAI_API_KEY: Jina AI API key (required)
- READER_HTTP_TIMEOUT: Client-side cap per request, e.g. 90s (optional)
- LOG_LEVEL: debug, info, warn or error (optional)
- METRICS_ADDR: Listen address for Prometheus metrics, e.g. :9090 (optional)`

// recoverPanic recovers a panic in a background goroutine and logs it
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

func main() {
	if err := reader.LoadDotEnv(".env"); err != nil {
		log.Printf("Warning: %v", err)
	}

	config, err := reader.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := newLogger(os.Stderr, config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("Server error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves MCP on stdio until the host disconnects or ctx is canceled.
func run(ctx context.Context, config *reader.Config, logger *slog.Logger) error {
	tracingConfig := tracing.DefaultConfig()
	tracingConfig.ServiceName = ServerName
	tracingConfig.ServiceVersion = ServerVersion

	shutdownTracing, err := tracing.Setup(ctx, tracingConfig)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	if config.MetricsAddr != "" {
		metricsServer := newMetricsServer(config.MetricsAddr)
		go serveMetrics(metricsServer, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	client := reader.NewClient(config, reader.WithLogger(logger))
	server := newServer(tools.NewGateway(client, logger), logger)

	logStartup(os.Stderr,
		"name", ServerName,
		"version", ServerVersion,
		"tracing", tracingConfig.Enabled,
		"metrics_addr", config.MetricsAddr,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newLogger builds the text logger used throughout the server
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// logStartup writes the startup notice whatever LOG_LEVEL is set to
func logStartup(w io.Writer, attrs ...any) {
	newLogger(w, slog.LevelInfo).Info(StartupNotice, attrs...)
}

// newServer creates the MCP server and registers every gateway tool
func newServer(gateway *tools.Gateway, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	gateway.RegisterAll(server)
	return server
}

// newMetricsServer exposes Prometheus metrics on /metrics
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serveMetrics(server *http.Server, logger *slog.Logger) {
	defer recoverPanic(logger, "metrics server")

	logger.Info("Serving metrics", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Metrics server failed", "error", err)
	}
}
