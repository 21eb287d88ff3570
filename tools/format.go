package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lexandro/filesubstrings/index"
	"github.com/lexandro/filesubstrings/scan"
)

// FormatSubstrings formats ranked entries as one "token : count" line each.
func FormatSubstrings(entries []*index.SubstringEntry) string {
	if len(entries) == 0 {
		return "No substrings matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d substrings:\n\n", len(entries)))
	for _, entry := range entries {
		builder.WriteString(fmt.Sprintf("%s : %d\n", entry.Token, entry.OccurrenceCount()))
	}
	return builder.String()
}

// FormatFiles formats the files recorded for token, one per line.
// fullPath selects the absolute path instead of the file name.
func FormatFiles(token string, files []*index.FileRef, found bool, fullPath bool) string {
	if !found || len(files) == 0 {
		return NotFoundMessage(token)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d files containing %q:\n\n", len(files), token))
	for _, file := range files {
		builder.WriteString(file.DisplayName(fullPath))
		builder.WriteString("\n")
	}
	return builder.String()
}

// NotFoundMessage is reported when no file name contains the substring.
func NotFoundMessage(token string) string {
	return fmt.Sprintf("Found no files containing %q", token)
}

// DescribeError turns a scan failure into a user-facing message.
func DescribeError(err error) string {
	var pathErr *scan.PathError
	if !errors.As(err, &pathErr) {
		return err.Error()
	}
	switch pathErr.Kind {
	case scan.KindPathNotFound:
		return fmt.Sprintf("Could not find directory %s", pathErr.Path)
	case scan.KindAccessDenied:
		return fmt.Sprintf("Could not access directory %s", pathErr.Path)
	case scan.KindPathTooLong:
		return fmt.Sprintf("Directory path is too long %s", pathErr.Path)
	default:
		return err.Error()
	}
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
