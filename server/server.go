package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/filesubstrings/tools"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	listHandler *tools.ListHandler,
	filesHandler *tools.FilesHandler,
	statusHandler *tools.StatusHandler,
	resetHandler *tools.ResetHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "filesubstrings",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server finds recurring name fragments across the files of a directory tree.

File base names (extension removed) are split into runs of ASCII letters and digits. Each run is a substring.
- Use substrings_list to see which substrings occur most often
- Use substrings_files to list the files whose name contains a substring
- Results are cached per directory; use substrings_reset after files were added, renamed or removed`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "substrings_list",
		Description: `List the substrings shared by file names under a directory, most frequent first.

Output format: one "substring : count" line per result.
Ties keep the order in which substrings were first seen while scanning.
Thresholds:
  - minLength: shorter substrings are never recorded (default 3)
  - minCount: substrings seen fewer times are omitted (default 2)
  - maxResults: cap on returned lines, 0 for no limit`,
	}, listHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "substrings_files",
		Description: `List the files whose base name contains an exact substring (case-sensitive).

The occurrence threshold does not apply: a substring seen once is still found.
Reports "Found no files containing ..." when the substring was never recorded.`,
	}, filesHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "substrings_status",
		Description: "Show cached indexes for a directory: thresholds, state, file and substring counts, memory usage, and uptime. Never scans.",
	}, statusHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "substrings_reset",
		Description: "Drop the cached indexes for a directory. The next query rescans the filesystem.",
	}, resetHandler.Handle)

	return mcpServer
}
