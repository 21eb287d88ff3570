package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs defines the input parameters for the substrings_status tool.
type StatusArgs struct {
	Root string `json:"root,omitempty" jsonschema:"Directory to report on (default: the server root)"`
}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Registry  *Registry
	StartTime time.Time
	Logger    *slog.Logger
}

// Handle processes a substrings_status request. It never triggers a scan.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	root := h.Registry.ConfigFor(args.Root).RootPath
	engines := h.Registry.Engines(root)
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("substrings_status",
		"root", root,
		"engines", len(engines),
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	var builder strings.Builder
	builder.WriteString("=== filesubstrings Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Root directory: %s\n", root))
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Cached engines: %d (total %d)\n", len(engines), h.Registry.Len()))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatFileSize(int64(memStats.Alloc)),
		formatFileSize(int64(memStats.HeapAlloc)),
	))

	for _, e := range engines {
		config := e.Config()
		builder.WriteString(fmt.Sprintf("\nminLength=%d minCount=%d maxResults=%d: %s\n",
			config.MinSubstringLength, config.MinOccurrenceCount, config.MaxResults, e.State()))

		stats, ok := e.CachedStats()
		if !ok {
			continue
		}
		builder.WriteString(fmt.Sprintf("  Files: %d (%s)\n", stats.FileCount, formatFileSize(stats.TotalSize)))
		builder.WriteString(fmt.Sprintf("  Distinct substrings: %d\n", stats.TokenCount))
		builder.WriteString(fmt.Sprintf("  Occurrences: %d\n", stats.Occurrences))
	}

	return textResult(builder.String()), nil, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
