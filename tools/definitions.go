package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/olgasafonova/jina-reader-mcp-server/internal/reader"
)

// AllTools contains all tool specifications for the Jina Reader MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     reader.ToolName,
		Method:   "ReadURL",
		Title:    "Read URL",
		Category: "read",
		Description: `Convert any URL to LLM-friendly text using Jina.ai Reader

USE WHEN: User shares a link, asks "what does this page say", "summarize this article", or needs the text of a web page.

PARAMETERS:
- url: Absolute URL to process (required)
- format: "json" (default) or "stream"
- no_cache: Bypass the reader cache (default false)
- timeout: Seconds to wait for the page to load
- target_selector / wait_for_selector / remove_selector: CSS selectors to focus on, wait for, or exclude elements
- with_links_summary / with_images_summary / with_generated_alt / with_iframe: Extra post-processing

RETURNS: The reader response body as text, unmodified.`,
		Schema:     readURLSchema,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}

// readURLSchema describes the read_url arguments.
func readURLSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"url": {
				Type:        "string",
				Description: "URL to process",
			},
			"no_cache": {
				Type:        "boolean",
				Description: "Bypass cache for fresh results",
				Default:     json.RawMessage(`false`),
			},
			"format": {
				Type:        "string",
				Description: "Response format (json or stream)",
				Enum:        []any{reader.FormatJSON, reader.FormatStream},
				Default:     json.RawMessage(`"json"`),
			},
			"timeout": {
				Type:        "number",
				Description: "Maximum time in seconds to wait for webpage load",
			},
			"target_selector": {
				Type:        "string",
				Description: "CSS selector to focus on specific elements",
			},
			"wait_for_selector": {
				Type:        "string",
				Description: "CSS selector to wait for specific elements",
			},
			"remove_selector": {
				Type:        "string",
				Description: "CSS selector to exclude specific elements",
			},
			"with_links_summary": {
				Type:        "boolean",
				Description: "Gather all links at the end of response",
			},
			"with_images_summary": {
				Type:        "boolean",
				Description: "Gather all images at the end of response",
			},
			"with_generated_alt": {
				Type:        "boolean",
				Description: "Add alt text to images lacking captions",
			},
			"with_iframe": {
				Type:        "boolean",
				Description: "Include iframe content in response",
			},
		},
		Required: []string{"url"},
	}
}
