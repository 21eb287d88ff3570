package main

import (
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexandro/filesubstrings/config"
	"github.com/lexandro/filesubstrings/register"
	"github.com/lexandro/filesubstrings/server"
	"github.com/lexandro/filesubstrings/tools"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var cacheSize int

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Run the MCP server on stdio",
		Long: `Run an MCP server on stdin/stdout exposing the substring queries as tools.

The directory (default: the current directory) and the threshold flags become
the defaults for every tool call; a call may name another root or override them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			// serve is quiet on stdout, so info is a useful default
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel == config.Default().LogLevel {
				cfg.LogLevel = "info"
			}
			logger := setupLogger(cfg.LogLevel, cfg.LogFile, cmd.ErrOrStderr())

			defaults, err := cfg.EngineConfig()
			if err != nil {
				return err
			}

			logger.Info("starting filesubstrings",
				"root", defaults.RootPath,
				"minLength", defaults.MinSubstringLength,
				"minCount", defaults.MinOccurrenceCount,
				"maxResults", defaults.MaxResults,
			)

			registry, err := tools.NewRegistry(defaults, cacheSize, logger)
			if err != nil {
				return err
			}

			mcpServer := server.Setup(
				&tools.ListHandler{Registry: registry, Logger: logger},
				&tools.FilesHandler{Registry: registry, Logger: logger},
				&tools.StatusHandler{Registry: registry, StartTime: time.Now(), Logger: logger},
				&tools.ResetHandler{Registry: registry, Logger: logger},
			)

			logger.Info("MCP server starting on stdio")
			if err := mcpServer.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				logger.Error("MCP server error", "error", err)
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cacheSize, "cache-size", tools.DefaultRegistrySize, "Maximum number of cached indexes")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register project [directory] [-- serve flags] | register user [-- serve flags]",
		Short: "Add this binary as an MCP server to .mcp.json or ~/.claude.json",
		Example: `  filesubstrings register project            # ./.mcp.json
  filesubstrings register project ~/photos -- --min-count 3
  filesubstrings register user -- --skip-common`,
		// arguments after "--" belong to the server entry
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			serverName := register.DeriveServerName(cmd.Root().Name())
			return register.Run(serverName, args, cmd.OutOrStdout())
		},
	}
}
