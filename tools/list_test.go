package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func newTestListHandler(t *testing.T, relPaths ...string) (*ListHandler, string) {
	t.Helper()
	r, root := newTestRegistry(t, relPaths...)
	return &ListHandler{Registry: r, Logger: discardLogger()}, root
}

func Test_ListHandler_Defaults(t *testing.T) {
	h, _ := newTestListHandler(t, "report_v1.txt", "report_v2.txt", "summary.txt")

	result, _, err := h.Handle(context.Background(), nil, ListArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "report : 2") {
		t.Errorf("expected 'report : 2', got:\n%s", text)
	}
	if strings.Contains(text, "summary") {
		t.Errorf("expected summary below the occurrence threshold, got:\n%s", text)
	}
}

func Test_ListHandler_Overrides(t *testing.T) {
	h, _ := newTestListHandler(t, "report_v1.txt", "report_v2.txt", "summary.txt")

	result, _, err := h.Handle(context.Background(), nil, ListArgs{
		MinLength:  intPtr(2),
		MinCount:   intPtr(1),
		MaxResults: intPtr(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Found 2 substrings") {
		t.Errorf("expected 2 substrings, got:\n%s", text)
	}
	if !strings.Contains(text, "report : 2\nv1 : 1\n") {
		t.Errorf("expected report then v1, got:\n%s", text)
	}
}

func Test_ListHandler_MissingRoot(t *testing.T) {
	h, root := newTestListHandler(t)
	missing := filepath.Join(root, "nope")

	result, _, err := h.Handle(context.Background(), nil, ListArgs{Root: missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for a missing root")
	}
	if text := resultText(t, result); text != "Could not find directory "+missing {
		t.Errorf("unexpected message: %s", text)
	}
}

func Test_ListHandler_NegativeOverride(t *testing.T) {
	h, _ := newTestListHandler(t)

	result, _, err := h.Handle(context.Background(), nil, ListArgs{MinCount: intPtr(-1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for a negative threshold")
	}
	if h.Registry.Len() != 0 {
		t.Error("expected no engine to be created for invalid arguments")
	}
}

func Test_ListHandler_EmptyDirectory(t *testing.T) {
	h, _ := newTestListHandler(t)

	result, _, err := h.Handle(context.Background(), nil, ListArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); text != "No substrings matched." {
		t.Errorf("unexpected output: %s", text)
	}
}
