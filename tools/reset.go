package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResetArgs defines the input parameters for the substrings_reset tool.
type ResetArgs struct {
	Root string `json:"root,omitempty" jsonschema:"Directory whose cached index is dropped (default: the server root)"`
}

// ResetHandler holds the dependencies for the reset tool.
type ResetHandler struct {
	Registry *Registry
	Logger   *slog.Logger
}

// Handle processes a substrings_reset request.
// The next query against the root rescans the filesystem.
func (h *ResetHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ResetArgs) (*mcp.CallToolResult, any, error) {
	root := h.Registry.ConfigFor(args.Root).RootPath
	count := h.Registry.Reset(root)

	h.Logger.Info("substrings_reset", "root", root, "engines", count)

	return textResult(fmt.Sprintf("Reset complete: %d cached indexes dropped for %s", count, root)), nil, nil
}
