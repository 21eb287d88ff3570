package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilesArgs defines the input parameters for the substrings_files tool.
type FilesArgs struct {
	Substring  string `json:"substring" jsonschema:"Exact alphanumeric token to look up (case-sensitive)"`
	Root       string `json:"root,omitempty" jsonschema:"Directory to scan (default: the server root)"`
	MinLength  *int   `json:"minLength,omitempty" jsonschema:"Minimum substring length used when building the index (default 3)"`
	MaxResults *int   `json:"maxResults,omitempty" jsonschema:"Maximum number of files to return (0 for no limit)"`
	FullPath   bool   `json:"fullPath,omitempty" jsonschema:"If true return absolute paths instead of file names"`
}

// FilesHandler holds the dependencies for the files tool.
type FilesHandler struct {
	Registry *Registry
	Logger   *slog.Logger
}

// Handle processes a substrings_files request.
func (h *FilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FilesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Substring == "" {
		h.Logger.Warn("substrings_files called with empty substring")
		return errorResult("Error: substring parameter is required"), nil, nil
	}

	config := h.Registry.ConfigFor(args.Root)
	applyOverrides(&config, args.MinLength, nil, args.MaxResults)
	if msg, ok := checkThresholds(config); !ok {
		h.Logger.Warn("substrings_files called with invalid arguments", "error", msg)
		return errorResult(msg), nil, nil
	}

	files, found, err := h.Registry.Engine(config).GetFiles(args.Substring)
	if err != nil {
		h.Logger.Error("substrings_files failed", "root", config.RootPath, "substring", args.Substring, "error", err)
		return errorResult(DescribeError(err)), nil, nil
	}

	h.Logger.Info("substrings_files",
		"root", config.RootPath,
		"substring", args.Substring,
		"found", found,
		"results", len(files),
		"elapsed", time.Since(start),
	)

	return textResult(FormatFiles(args.Substring, files, found, args.FullPath)), nil, nil
}
