package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/filesubstrings/engine"
)

// ListArgs defines the input parameters for the substrings_list tool.
type ListArgs struct {
	Root       string `json:"root,omitempty" jsonschema:"Directory to scan (default: the server root)"`
	MinLength  *int   `json:"minLength,omitempty" jsonschema:"Minimum substring length (default 3)"`
	MinCount   *int   `json:"minCount,omitempty" jsonschema:"Minimum number of occurrences (default 2)"`
	MaxResults *int   `json:"maxResults,omitempty" jsonschema:"Maximum number of substrings to return (0 for no limit)"`
}

// ListHandler holds the dependencies for the list tool.
type ListHandler struct {
	Registry *Registry
	Logger   *slog.Logger
}

// Handle processes a substrings_list request.
func (h *ListHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	config := h.Registry.ConfigFor(args.Root)
	applyOverrides(&config, args.MinLength, args.MinCount, args.MaxResults)
	if msg, ok := checkThresholds(config); !ok {
		h.Logger.Warn("substrings_list called with invalid arguments", "error", msg)
		return errorResult(msg), nil, nil
	}

	entries, err := h.Registry.Engine(config).ListSubstrings()
	if err != nil {
		h.Logger.Error("substrings_list failed", "root", config.RootPath, "error", err)
		return errorResult(DescribeError(err)), nil, nil
	}

	h.Logger.Info("substrings_list",
		"root", config.RootPath,
		"results", len(entries),
		"elapsed", time.Since(start),
	)

	return textResult(FormatSubstrings(entries)), nil, nil
}

// applyOverrides replaces thresholds that were supplied in a tool call.
func applyOverrides(config *engine.Config, minLength, minCount, maxResults *int) {
	if minLength != nil {
		config.MinSubstringLength = *minLength
	}
	if minCount != nil {
		config.MinOccurrenceCount = *minCount
	}
	if maxResults != nil {
		config.MaxResults = *maxResults
	}
}

func checkThresholds(config engine.Config) (string, bool) {
	switch {
	case config.MinSubstringLength < 0:
		return "Error: minLength must be non-negative", false
	case config.MinOccurrenceCount < 0:
		return "Error: minCount must be non-negative", false
	case config.MaxResults < 0:
		return "Error: maxResults must be non-negative", false
	}
	return "", true
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
