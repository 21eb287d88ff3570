package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Matcher_DisabledByDefault(t *testing.T) {
	tmpDir := t.TempDir()
	matcher := NewMatcher(MatcherOptions{RootDir: tmpDir})

	assert.False(t, matcher.Enabled())
	assert.False(t, matcher.ShouldIgnore(filepath.Join(tmpDir, ".git", "config")))
	assert.False(t, matcher.ShouldIgnoreDir(filepath.Join(tmpDir, "node_modules")))
	assert.False(t, matcher.ShouldIgnore(filepath.Join(tmpDir, ".DS_Store")))
}

func Test_Matcher_SkipCommon(t *testing.T) {
	tmpDir := t.TempDir()
	matcher := NewMatcher(MatcherOptions{RootDir: tmpDir, SkipCommon: true})

	assert.True(t, matcher.Enabled())
	assert.True(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "node_modules", "express", "index.js")))
	assert.True(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "docs", ".DS_Store")))
	assert.True(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "notes.txt.swp")))
	assert.False(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "report_v1.txt")))
}

func Test_Matcher_ShouldIgnoreDir(t *testing.T) {
	tmpDir := t.TempDir()
	matcher := NewMatcher(MatcherOptions{RootDir: tmpDir, SkipCommon: true})

	tests := []struct {
		dirName string
		ignored bool
	}{
		{".git", true},
		{"node_modules", true},
		{"__pycache__", true},
		{".idea", true},
		{"src", false},
		{"reports", false},
	}

	for _, tt := range tests {
		t.Run(tt.dirName, func(t *testing.T) {
			got := matcher.ShouldIgnoreDir(filepath.Join(tmpDir, tt.dirName))
			assert.Equal(t, tt.ignored, got)
		})
	}
}

func Test_Matcher_GitignoreIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("*.generated.go\nsecret/\n"), 0644))

	matcher := NewMatcher(MatcherOptions{RootDir: tmpDir, RespectGitignore: true})

	assert.True(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "models.generated.go")))
	assert.True(t, matcher.ShouldIgnoreDir(filepath.Join(tmpDir, "secret")))
	assert.False(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "main.go")))
}

func Test_Matcher_GitignoreIgnoredUnlessRequested(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("*.log\n"), 0644))

	matcher := NewMatcher(MatcherOptions{RootDir: tmpDir})

	assert.False(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "build.log")))
}

func Test_Matcher_CustomPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	matcher := NewMatcher(MatcherOptions{
		RootDir:        tmpDir,
		CustomPatterns: []string{"*.custom", "archive/**", " "},
	})

	assert.True(t, matcher.Enabled())
	assert.True(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "deep", "data.custom")))
	assert.True(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "archive", "2020", "old_report.txt")))
	assert.True(t, matcher.ShouldIgnoreDir(filepath.Join(tmpDir, "archive", "2020")))
	assert.False(t, matcher.ShouldIgnore(filepath.Join(tmpDir, "report.txt")))
}

func Test_ValidatePatterns(t *testing.T) {
	_, ok := ValidatePatterns([]string{"**/*.go", "src/*"})
	assert.True(t, ok)

	bad, ok := ValidatePatterns([]string{"*.txt", "[invalid"})
	assert.False(t, ok)
	assert.Equal(t, "[invalid", bad)
}
