// Package reader provides the client for the Jina Reader service, which
// converts a web page URL into LLM-friendly text.
package reader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	apierrors "github.com/olgasafonova/jina-reader-mcp-server/internal/errors"
	"github.com/olgasafonova/jina-reader-mcp-server/metrics"
	"github.com/olgasafonova/jina-reader-mcp-server/tracing"
	"go.opentelemetry.io/otel/codes"
)

const (
	// BaseURL is the reader endpoint. The target URL is appended verbatim.
	BaseURL = "https://r.jina.ai/"

	// ToolName is the MCP tool served by this client
	ToolName = "read_url"
)

// Client performs reader requests. It is safe for concurrent use; all of
// its fields are fixed at construction.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	baseURL    string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = l
	}
}

// WithBaseURL points the client at a different reader endpoint.
// The value must end with "/" to keep the path layout of BaseURL.
func WithBaseURL(u string) ClientOption {
	return func(client *Client) {
		client.baseURL = u
	}
}

// NewClient creates a reader client from cfg
func NewClient(cfg *Config, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: newHTTPClient(cfg.HTTPTimeout),
		logger:     slog.Default(),
		apiKey:     cfg.APIKey,
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RequestURL returns the upstream URL for target. This is plain string
// concatenation, not URL resolution: target is neither parsed nor
// re-encoded, and any query string in it becomes the reader request's query.
func (c *Client) RequestURL(target string) string {
	return c.baseURL + target
}

// Read fetches args.URL through the reader service and returns the response
// body unmodified. Exactly one request is made. Errors are *ToolError values
// of kind KindUpstreamStatus or KindUpstreamTransport.
func (c *Client) Read(ctx context.Context, args ReadURLArgs) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "reader.fetch")
	defer span.End()

	format := FormatJSON
	if args.Accept() == AcceptEventStream {
		format = FormatStream
	}
	tracing.AddReaderAttributes(span, targetHost(args.URL), format)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(args.URL), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", apierrors.NewUpstreamTransportError(ToolName, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header = BuildHeaders(args, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamCall(0, time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("Reader request failed",
			"url", args.URL,
			"error", err)
		return "", apierrors.NewUpstreamTransportError(ToolName, fmt.Errorf("request failed: %w", err))
	}

	body, readErr := readAndClose(resp)
	duration := time.Since(start).Seconds()
	metrics.RecordUpstreamCall(resp.StatusCode, duration)
	tracing.AddStatusAttribute(span, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		c.logger.Warn("Reader returned error status",
			"url", args.URL,
			"status", resp.StatusCode,
			"body", truncate(string(body), 200))
		return "", apierrors.NewUpstreamStatusError(ToolName, resp.StatusCode)
	}

	if readErr != nil {
		span.RecordError(readErr)
		span.SetStatus(codes.Error, readErr.Error())
		return "", apierrors.NewUpstreamTransportError(ToolName, fmt.Errorf("failed to read response: %w", readErr))
	}

	metrics.RecordContentSize(format, len(body))
	span.SetStatus(codes.Ok, "")
	return string(body), nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func targetHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// newHTTPClient creates an HTTP client with pooled transport settings.
// A zero timeout leaves the request bounded only by its context.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     120 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
