package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	apierrors "github.com/olgasafonova/jina-reader-mcp-server/internal/errors"
	"github.com/olgasafonova/jina-reader-mcp-server/internal/reader"
)

// Gateway lists the available tools and routes tool calls to the reader.
// It holds no per-call state and is safe for concurrent use.
type Gateway struct {
	reader *reader.Client
	logger *slog.Logger
	specs  map[string]ToolSpec
	tools  []*mcp.Tool
}

// NewGateway creates a gateway backed by the given reader client.
// Tool descriptors are built once here and never change afterwards.
func NewGateway(client *reader.Client, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		reader: client,
		logger: logger,
		specs:  make(map[string]ToolSpec, len(AllTools)),
	}
	for _, spec := range AllTools {
		g.specs[spec.Name] = spec
		g.tools = append(g.tools, g.buildTool(spec))
	}
	return g
}

// Tools returns the descriptors of every tool the gateway serves.
func (g *Gateway) Tools() []*mcp.Tool {
	out := make([]*mcp.Tool, len(g.tools))
	copy(out, g.tools)
	return out
}

// Invoke runs the named tool with raw JSON arguments.
// Errors are *apierrors.ToolError values classified by kind.
func (g *Gateway) Invoke(ctx context.Context, name string, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	spec, ok := g.specs[name]
	if !ok {
		return nil, apierrors.NewUnknownToolError(name)
	}

	switch spec.Method {
	case "ReadURL":
		return g.readURL(ctx, arguments)
	default:
		return nil, fmt.Errorf("tool %s has no handler for method %s", spec.Name, spec.Method)
	}
}

// readURL validates the arguments before any network I/O, then fetches.
func (g *Gateway) readURL(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	args, err := reader.ParseArgs(arguments)
	if err != nil {
		return nil, err
	}

	text, err := g.reader.Read(ctx, args)
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (g *Gateway) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	} else {
		annotations.DestructiveHint = ptr(false)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		InputSchema: spec.Schema(),
		Annotations: annotations,
	}
}
