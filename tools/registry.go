package tools

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lexandro/filesubstrings/engine"
)

// DefaultRegistrySize bounds the number of cached engines.
const DefaultRegistrySize = 16

// Registry keeps one engine per distinct configuration so repeated tool calls
// reuse a built index. The least recently used engine is dropped when full.
type Registry struct {
	defaults engine.Config
	logger   *slog.Logger

	mu      sync.Mutex // serializes get-or-create
	engines *lru.Cache[string, *engine.Engine]
}

// NewRegistry creates a registry whose engines start from defaults.
// A size <= 0 uses DefaultRegistrySize.
func NewRegistry(defaults engine.Config, size int, logger *slog.Logger) (*Registry, error) {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	r := &Registry{defaults: defaults, logger: logger}

	cache, err := lru.NewWithEvict(size, func(key string, e *engine.Engine) {
		logger.Debug("engine evicted", "root", e.Config().RootPath)
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine cache: %w", err)
	}
	r.engines = cache
	return r, nil
}

// Defaults returns a copy of the configuration new engines start from.
func (r *Registry) Defaults() engine.Config {
	config := r.defaults
	config.Exclude = append([]string(nil), r.defaults.Exclude...)
	return config
}

// ConfigFor returns the default configuration with root replaced when non-empty.
func (r *Registry) ConfigFor(root string) engine.Config {
	config := r.Defaults()
	if root != "" {
		config.RootPath = root
	}
	return config
}

// Engine returns the cached engine for config, creating it in the Empty state if needed.
func (r *Registry) Engine(config engine.Config) *engine.Engine {
	key := configKey(config)

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines.Get(key); ok {
		return e
	}
	e := engine.New(config)
	r.engines.Add(key, e)
	r.logger.Debug("engine created", "root", config.RootPath, "cached", r.engines.Len())
	return e
}

// Reset drops the cached index of every engine scanning root and returns how many were reset.
func (r *Registry) Reset(root string) int {
	target := normalizeRoot(root)

	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, key := range r.engines.Keys() {
		e, ok := r.engines.Peek(key)
		if !ok {
			continue
		}
		if normalizeRoot(e.Config().RootPath) == target {
			e.Reset()
			count++
		}
	}
	return count
}

// Engines returns the cached engines scanning root, most recently used first.
func (r *Registry) Engines(root string) []*engine.Engine {
	target := normalizeRoot(root)

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := r.engines.Keys()
	result := make([]*engine.Engine, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if e, ok := r.engines.Peek(keys[i]); ok && normalizeRoot(e.Config().RootPath) == target {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of cached engines.
func (r *Registry) Len() int {
	return r.engines.Len()
}

func configKey(config engine.Config) string {
	return fmt.Sprintf("%s|%d|%d|%d|%t|%t|%s",
		normalizeRoot(config.RootPath),
		config.MinSubstringLength,
		config.MinOccurrenceCount,
		config.MaxResults,
		config.RespectGitignore,
		config.SkipCommon,
		strings.Join(config.Exclude, "\x00"),
	)
}

func normalizeRoot(root string) string {
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}
