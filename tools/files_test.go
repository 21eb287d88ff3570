package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFilesHandler(t *testing.T, relPaths ...string) (*FilesHandler, string) {
	t.Helper()
	r, root := newTestRegistry(t, relPaths...)
	return &FilesHandler{Registry: r, Logger: discardLogger()}, root
}

func Test_FilesHandler_EmptySubstring(t *testing.T) {
	h, _ := newTestFilesHandler(t)

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Substring: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty substring")
	}
	if text := resultText(t, result); !strings.Contains(text, "substring parameter is required") {
		t.Errorf("expected error message about empty substring, got: %s", text)
	}
}

func Test_FilesHandler_Found(t *testing.T) {
	h, root := newTestFilesHandler(t, "report_v1.txt", "docs/report_v2.txt", "summary.txt")

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Substring: "report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Found 2 files") {
		t.Errorf("expected 2 files, got:\n%s", text)
	}
	if !strings.Contains(text, "report_v2.txt\nreport_v1.txt\n") {
		t.Errorf("expected names in discovery order, got:\n%s", text)
	}

	result, _, _ = h.Handle(context.Background(), nil, FilesArgs{Substring: "report", FullPath: true})
	text = resultText(t, result)
	if !strings.Contains(text, filepath.Join(root, "docs", "report_v2.txt")) {
		t.Errorf("expected full paths, got:\n%s", text)
	}
}

func Test_FilesHandler_NotFound(t *testing.T) {
	h, _ := newTestFilesHandler(t, "report_v1.txt")

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Substring: "budget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected not-found to be a normal result")
	}
	if text := resultText(t, result); text != `Found no files containing "budget"` {
		t.Errorf("unexpected message: %s", text)
	}
}

func Test_FilesHandler_MaxResults(t *testing.T) {
	h, _ := newTestFilesHandler(t, "report_a.txt", "report_b.txt", "report_c.txt")

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Substring: "report", MaxResults: intPtr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Found 2 files") || strings.Contains(text, "report_c.txt") {
		t.Errorf("expected results capped at 2, got:\n%s", text)
	}
}
