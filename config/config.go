// Package config loads the filesubstrings configuration.
//
// Values are layered: built-in defaults, then an optional YAML file,
// then FILESUBSTRINGS_* environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexandro/filesubstrings/engine"
	"github.com/lexandro/filesubstrings/ignore"
)

// FileNames are looked up in the working directory when no config path is given.
// The first existing one wins.
var FileNames = []string{".filesubstrings.yaml", ".filesubstrings.yml"}

// Config is the complete filesubstrings configuration.
type Config struct {
	Root             string   `yaml:"root"`
	MinLength        int      `yaml:"min_length"`
	MinCount         int      `yaml:"min_count"`
	MaxResults       int      `yaml:"max_results"` // 0 means unlimited
	Exclude          []string `yaml:"exclude"`
	RespectGitignore bool     `yaml:"respect_gitignore"`
	SkipCommon       bool     `yaml:"skip_common"`
	FullPath         bool     `yaml:"full_path"`
	LogLevel         string   `yaml:"log_level"`
	LogFile          string   `yaml:"log_file"`
}

// Default returns the built-in defaults. An empty Root means the current directory.
func Default() *Config {
	return &Config{
		MinLength:  engine.DefaultMinSubstringLength,
		MinCount:   engine.DefaultMinOccurrenceCount,
		MaxResults: engine.Unlimited,
		LogLevel:   "warn",
	}
}

// Load builds the configuration from defaults, the YAML file at path and the environment.
// With an empty path the FileNames in dir are tried and a missing file is not an error.
func Load(path string, dir string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile(dir)
	}
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadYAML overlays the keys present in the file; absent keys keep their current value.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FILESUBSTRINGS_ROOT"); v != "" {
		c.Root = v
	}
	if err := envInt("FILESUBSTRINGS_MIN_LENGTH", &c.MinLength); err != nil {
		return err
	}
	if err := envInt("FILESUBSTRINGS_MIN_COUNT", &c.MinCount); err != nil {
		return err
	}
	if err := envInt("FILESUBSTRINGS_MAX_RESULTS", &c.MaxResults); err != nil {
		return err
	}
	if v := os.Getenv("FILESUBSTRINGS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func envInt(name string, target *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	*target = n
	return nil
}

// Validate checks value ranges, the log level and the exclude globs.
func (c *Config) Validate() error {
	if c.MinLength < 0 {
		return fmt.Errorf("min_length must be non-negative, got %d", c.MinLength)
	}
	if c.MinCount < 0 {
		return fmt.Errorf("min_count must be non-negative, got %d", c.MinCount)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must be non-negative, got %d", c.MaxResults)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	if pattern, ok := ignore.ValidatePatterns(c.Exclude); !ok {
		return fmt.Errorf("invalid exclude pattern: %s", pattern)
	}
	return nil
}

// EngineConfig converts the configuration into the immutable engine configuration.
// An empty Root resolves to the current working directory.
func (c *Config) EngineConfig() (engine.Config, error) {
	root := c.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return engine.Config{}, fmt.Errorf("getting working directory: %w", err)
		}
		root = wd
	}

	return engine.Config{
		RootPath:           root,
		MinSubstringLength: c.MinLength,
		MinOccurrenceCount: c.MinCount,
		MaxResults:         c.MaxResults,
		Exclude:            append([]string(nil), c.Exclude...),
		RespectGitignore:   c.RespectGitignore,
		SkipCommon:         c.SkipCommon,
	}, nil
}
