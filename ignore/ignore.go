package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher determines whether a path should be skipped during a scan.
// It combines the common patterns, the root .gitignore and custom glob patterns;
// each source is only consulted when enabled in MatcherOptions.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	rootDir        string
	gitIgnore      gitignore.GitIgnore
	customPatterns []string
	skipCommon     bool
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir          string
	CustomPatterns   []string // doublestar globs matched against relative path and base name
	RespectGitignore bool     // load <RootDir>/.gitignore
	SkipCommon       bool     // apply CommonPatterns
}

// NewMatcher creates an ignore matcher for the given root.
func NewMatcher(options MatcherOptions) *Matcher {
	matcher := &Matcher{
		rootDir:        options.RootDir,
		customPatterns: normalizePatterns(options.CustomPatterns),
		skipCommon:     options.SkipCommon,
	}

	if options.RespectGitignore {
		matcher.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)
	}

	return matcher
}

// Enabled reports whether the matcher can skip anything at all.
func (m *Matcher) Enabled() bool {
	return m.skipCommon || m.gitIgnore != nil || len(m.customPatterns) > 0
}

// ShouldIgnore returns true if the file at absolutePath should not be visited.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	return m.matches(absolutePath, false)
}

// ShouldIgnoreDir returns true if a directory should be skipped entirely during traversal.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	if m.skipCommon {
		switch filepath.Base(absolutePath) {
		case ".git", ".svn", ".hg", "node_modules", "__pycache__",
			".idea", ".vscode", ".vs", ".cache", ".venv":
			return true
		}
	}
	return m.matches(absolutePath, true)
}

func (m *Matcher) matches(absolutePath string, isDir bool) bool {
	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if m.skipCommon && matchesCommonPatterns(relativePath) {
		return true
	}

	// Relative() does not touch the disk
	if m.gitIgnore != nil {
		match := m.gitIgnore.Relative(relativePath, isDir)
		if match != nil && match.Ignore() {
			return true
		}
	}

	return m.matchesCustomPatterns(relativePath)
}

// matchesCommonPatterns checks every path component against CommonPatterns, case-insensitively.
func matchesCommonPatterns(relativePath string) bool {
	parts := strings.Split(strings.ToLower(relativePath), "/")
	for _, pattern := range CommonPatterns {
		pattern = strings.ToLower(pattern)
		for _, part := range parts {
			if matched, _ := doublestar.Match(pattern, part); matched {
				return true
			}
		}
	}
	return false
}

// matchesCustomPatterns checks the relative path and its base name against the user patterns.
func (m *Matcher) matchesCustomPatterns(relativePath string) bool {
	baseName := filepath.Base(relativePath)
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidatePatterns returns the first pattern that is not a valid doublestar glob.
func ValidatePatterns(patterns []string) (string, bool) {
	for _, pattern := range normalizePatterns(patterns) {
		if !doublestar.ValidatePattern(pattern) {
			return pattern, false
		}
	}
	return "", true
}

func normalizePatterns(patterns []string) []string {
	normalized := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(strings.ReplaceAll(pattern, "\\", "/"))
		if pattern != "" {
			normalized = append(normalized, pattern)
		}
	}
	return normalized
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
// Uses io.Reader approach to ensure the file handle is properly closed on Windows.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
