// Package engine ties traversal, tokenization and the substring index together
// behind a lazily built, resettable cache.
package engine

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lexandro/filesubstrings/ignore"
	"github.com/lexandro/filesubstrings/index"
	"github.com/lexandro/filesubstrings/scan"
)

// Default thresholds.
const (
	DefaultMinSubstringLength = 3
	DefaultMinOccurrenceCount = 2
	Unlimited                 = 0 // MaxResults value meaning no limit
)

// Config is the immutable configuration of one Engine.
type Config struct {
	RootPath           string
	MinSubstringLength int
	MinOccurrenceCount int
	MaxResults         int // <= 0 means unlimited

	Exclude          []string // doublestar globs skipped during traversal
	RespectGitignore bool
	SkipCommon       bool
}

// DefaultConfig returns the defaults for scanning rootPath.
func DefaultConfig(rootPath string) Config {
	return Config{
		RootPath:           rootPath,
		MinSubstringLength: DefaultMinSubstringLength,
		MinOccurrenceCount: DefaultMinOccurrenceCount,
		MaxResults:         Unlimited,
	}
}

// State is the cache state of an Engine.
type State int

const (
	// StateEmpty means no index is cached; the next query scans the filesystem.
	StateEmpty State = iota
	// StateBuilt means queries are served from the cached index.
	StateBuilt
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	default:
		return "empty"
	}
}

// Engine answers substring queries for one Config.
// The index is built on the first query and kept until Reset.
// Queries on a built index may run concurrently; the Empty to Built transition
// happens under the write lock and never exposes a partial index.
type Engine struct {
	config Config

	mu         sync.RWMutex
	index      *index.SubstringIndex // nil while empty
	generation uint64                // bumped by Reset

	builds singleflight.Group
}

// New creates an engine in the Empty state. The config is copied.
func New(config Config) *Engine {
	config.Exclude = append([]string(nil), config.Exclude...)
	return &Engine{config: config}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	config := e.config
	config.Exclude = append([]string(nil), e.config.Exclude...)
	return config
}

// State returns the current cache state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.index == nil {
		return StateEmpty
	}
	return StateBuilt
}

// ListSubstrings returns the entries occurring at least MinOccurrenceCount times,
// most frequent first with ties in discovery order, truncated to MaxResults.
// Entries and their Matches are shared with the cache and must not be modified.
func (e *Engine) ListSubstrings() ([]*index.SubstringEntry, error) {
	si, err := e.built()
	if err != nil {
		return nil, err
	}
	return si.Ranked(e.config.MinOccurrenceCount, e.config.MaxResults), nil
}

// GetFiles returns the files whose base name contains token, capped at MaxResults.
// The occurrence threshold does not apply. found is false when the token was never recorded.
func (e *Engine) GetFiles(token string) (files []*index.FileRef, found bool, err error) {
	si, err := e.built()
	if err != nil {
		return nil, false, err
	}
	files, found = si.Files(token, e.config.MaxResults)
	return files, found, nil
}

// FileCount returns the number of files visited by the scan, building the index if needed.
func (e *Engine) FileCount() (int, error) {
	si, err := e.built()
	if err != nil {
		return 0, err
	}
	return si.FileCount(), nil
}

// Stats returns the index totals, building the index if needed.
func (e *Engine) Stats() (index.Stats, error) {
	si, err := e.built()
	if err != nil {
		return index.Stats{}, err
	}
	return si.Stats(), nil
}

// CachedStats returns the totals of the cached index without building one.
// ok is false while the engine is empty.
func (e *Engine) CachedStats() (stats index.Stats, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.index == nil {
		return index.Stats{}, false
	}
	return e.index.Stats(), true
}

// Reset drops the cached index. The next query rescans the filesystem.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.index = nil
	e.generation++
}

// built returns the cached index, building it first when the engine is empty.
// Concurrent callers share a single traversal. A failed build caches nothing.
func (e *Engine) built() (*index.SubstringIndex, error) {
	e.mu.RLock()
	si, generation := e.index, e.generation
	e.mu.RUnlock()
	if si != nil {
		return si, nil
	}

	result, err, _ := e.builds.Do(strconv.FormatUint(generation, 10), func() (any, error) {
		fresh, err := e.build()
		if err != nil {
			return nil, err
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		// A Reset during the scan makes this result stale for later callers,
		// but it is still a complete index for the callers already waiting on it.
		if e.generation == generation && e.index == nil {
			e.index = fresh
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*index.SubstringIndex), nil
}

// build performs one full traversal and returns the finished index.
func (e *Engine) build() (*index.SubstringIndex, error) {
	walker := scan.NewWalker(scan.Options{
		RootDir: e.config.RootPath,
		Filter:  e.filter(),
	})
	return index.Build(walker.Files(), e.config.MinSubstringLength)
}

// filter returns nil when no exclusion is configured, so the walker skips no checks.
func (e *Engine) filter() scan.Filter {
	rootDir, err := scan.ResolveRoot(e.config.RootPath)
	if err != nil {
		// the walker reports the same error
		return nil
	}
	matcher := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:          rootDir,
		CustomPatterns:   e.config.Exclude,
		RespectGitignore: e.config.RespectGitignore,
		SkipCommon:       e.config.SkipCommon,
	})
	if !matcher.Enabled() {
		return nil
	}
	return matcher
}
