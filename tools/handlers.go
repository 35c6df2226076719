package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	apierrors "github.com/olgasafonova/jina-reader-mcp-server/internal/errors"
	"github.com/olgasafonova/jina-reader-mcp-server/metrics"
	"github.com/olgasafonova/jina-reader-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// errorData is attached to every tool error on the wire.
type errorData struct {
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
	Status    int    `json:"status,omitempty"`
}

// RegisterAll registers all tools with the MCP server. Calls naming an
// unregistered tool are answered by the gateway rather than the SDK.
func (g *Gateway) RegisterAll(server *mcp.Server) {
	for _, tool := range g.tools {
		server.AddTool(tool, g.handler(g.specs[tool.Name]))
	}
	server.AddReceivingMiddleware(g.unknownToolMiddleware)
	g.logger.Info("Registered all tools", "count", len(g.tools))
}

// unknownToolMiddleware rejects tools/call requests for names the gateway
// does not serve with a method-not-found error.
func (g *Gateway) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" {
			return next(ctx, method, req)
		}
		params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
		if !ok || params == nil {
			return next(ctx, method, req)
		}
		if _, known := g.specs[params.Name]; known {
			return next(ctx, method, req)
		}

		err := apierrors.NewUnknownToolError(params.Name)
		metrics.RecordToolError("unknown", err.Kind.String())
		g.logger.Info("Tool rejected", "tool", params.Name, "kind", err.Kind.String())
		return nil, toWireError(err)
	}
}

// handler wraps Invoke with panic recovery, metrics, tracing, and logging.
func (g *Gateway) handler(spec ToolSpec) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer g.recoverPanic(spec.Name, &result, &err)

		name := spec.Name
		var arguments json.RawMessage
		if req != nil && req.Params != nil {
			name = req.Params.Name
			arguments = req.Params.Arguments
		}

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+name)
		defer span.End()

		tracing.AddToolAttributes(span, name, spec.Category)
		span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

		metrics.RequestInFlight.WithLabelValues(name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(name).Dec()

		start := time.Now()
		res, callErr := g.Invoke(ctx, name, arguments)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if callErr != nil {
			kind := apierrors.KindOf(callErr)
			tracing.RecordError(span, callErr)
			span.SetStatus(codes.Error, callErr.Error())
			metrics.RecordRequest(name, duration, false)
			metrics.RecordToolError(name, kind.String())
			level := slog.LevelInfo
			switch {
			case apierrors.IsUpstream(callErr):
				level = slog.LevelWarn
			case kind == apierrors.KindUnknown:
				level = slog.LevelError
			}
			g.logger.Log(ctx, level, "Tool failed",
				"tool", name,
				"kind", kind.String(),
				"error", callErr.Error(),
				"duration_ms", time.Since(start).Milliseconds())
			return nil, toWireError(callErr)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(name, duration, true)
		g.logExecution(name, res, start)
		return res, nil
	}
}

// toWireError maps a tool failure onto a JSON-RPC error with a stable code.
func toWireError(err error) *jsonrpc.Error {
	var te *apierrors.ToolError
	if !errors.As(err, &te) {
		return &jsonrpc.Error{
			Code:    apierrors.CodeInternalError,
			Message: err.Error(),
		}
	}

	data, _ := json.Marshal(errorData{
		Kind:      te.Kind.String(),
		Retryable: te.Kind.Retryable(),
		Status:    te.StatusCode,
	})
	return &jsonrpc.Error{
		Code:    te.Code(),
		Message: te.Message,
		Data:    data,
	}
}

// recoverPanic recovers from panics in tool handlers and turns them into
// an internal error for the caller.
func (g *Gateway) recoverPanic(toolName string, result **mcp.CallToolResult, err *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		g.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		*result = nil
		*err = &jsonrpc.Error{
			Code:    apierrors.CodeInternalError,
			Message: fmt.Sprintf("%s failed: internal error", toolName),
		}
	}
}

// logExecution logs tool execution details.
func (g *Gateway) logExecution(name string, result *mcp.CallToolResult, start time.Time) {
	chars := 0
	if result != nil {
		for _, c := range result.Content {
			if tc, ok := c.(*mcp.TextContent); ok {
				chars += len(tc.Text)
			}
		}
	}

	g.logger.Info("Tool executed",
		"tool", name,
		"output_chars", chars,
		"approx_tokens", chars/4,
		"duration_ms", time.Since(start).Milliseconds())
}
