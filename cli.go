package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexandro/filesubstrings/config"
	"github.com/lexandro/filesubstrings/engine"
	"github.com/lexandro/filesubstrings/server"
)

// rootOptions holds the flag values. Only flags the user set override the loaded config.
type rootOptions struct {
	minLength        int
	minCount         int
	maxResults       int
	substring        string
	fullPath         bool
	exclude          []string
	respectGitignore bool
	skipCommon       bool
	configPath       string
	logLevel         string
	logFile          string
	noColor          bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "filesubstrings [directory]",
		Short: "Find recurring name fragments across the files of a directory tree",
		Long: `filesubstrings scans a directory recursively and splits every file name
(extension removed) into runs of ASCII letters and digits.

Without --substring it lists the substrings shared by the most files,
as "substring : count" lines. With --substring it lists the files whose
name contains that exact substring.`,
		Version:       server.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.substring, "substring", "s", "", "List the files whose name contains this substring")

	flags := cmd.PersistentFlags()
	flags.IntVarP(&opts.minLength, "min-length", "l", engine.DefaultMinSubstringLength, "Minimum substring length")
	flags.IntVarP(&opts.minCount, "min-count", "o", engine.DefaultMinOccurrenceCount, "Minimum number of occurrences")
	flags.IntVarP(&opts.maxResults, "count", "c", engine.Unlimited, "Maximum number of results (0 for no limit)")
	flags.BoolVarP(&opts.fullPath, "full-path", "f", false, "Print full paths when listing files")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "Glob pattern to skip (repeatable)")
	flags.BoolVar(&opts.respectGitignore, "gitignore", false, "Skip files matched by the root .gitignore")
	flags.BoolVar(&opts.skipCommon, "skip-common", false, "Skip VCS and dependency directories and OS junk files")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default: ./.filesubstrings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file path (default: stderr)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newRegisterCmd())

	return cmd
}

// loadConfig layers the explicitly set flags and the directory argument over the config file and env.
func loadConfig(cmd *cobra.Command, opts *rootOptions, args []string) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, ".")
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("min-length") {
		cfg.MinLength = opts.minLength
	}
	if changed("min-count") {
		cfg.MinCount = opts.minCount
	}
	if changed("count") {
		cfg.MaxResults = opts.maxResults
	}
	if changed("full-path") {
		cfg.FullPath = opts.fullPath
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	}
	if changed("gitignore") {
		cfg.RespectGitignore = opts.respectGitignore
	}
	if changed("skip-common") {
		cfg.SkipCommon = opts.skipCommon
	}
	if changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runQuery(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.LogLevel, cfg.LogFile, cmd.ErrOrStderr())

	engineConfig, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		"root", engineConfig.RootPath,
		"minLength", engineConfig.MinSubstringLength,
		"minCount", engineConfig.MinOccurrenceCount,
		"maxResults", engineConfig.MaxResults,
	)

	start := time.Now()
	e := engine.New(engineConfig)
	out := newRenderer(cmd.OutOrStdout(), opts.noColor)

	if cmd.Flags().Changed("substring") {
		files, found, err := e.GetFiles(opts.substring)
		if err != nil {
			return err
		}
		logScan(logger, e, start)
		return out.files(opts.substring, files, found, cfg.FullPath)
	}

	entries, err := e.ListSubstrings()
	if err != nil {
		return err
	}
	logScan(logger, e, start)
	return out.substrings(entries)
}

func logScan(logger *slog.Logger, e *engine.Engine, start time.Time) {
	stats, ok := e.CachedStats()
	if !ok {
		return
	}
	logger.Info("scan complete",
		"root", e.Config().RootPath,
		"files", stats.FileCount,
		"substrings", stats.TokenCount,
		"elapsed", time.Since(start),
	)
}
