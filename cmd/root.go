// Package cmd provides the ragbase CLI.
//
// Commands:
//   - serve: HTTP JSON API server
//   - mcp: Model Context Protocol server on stdio
//   - add: ingest content into the knowledge base
//   - search: similarity search over stored chunks
//   - resources: list, show, and delete stored resources
//   - migrate: run database migrations
//   - version: show version information
//
// All long-running commands handle SIGINT/SIGTERM via context
// cancellation and shut down gracefully.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ragbase/ragbase/internal/log"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "ragbase",
	Short: "ragbase - knowledge base with semantic search",
	Long: `ragbase stores text resources as embedded chunks in PostgreSQL with
pgvector and retrieves the most relevant chunks for a query by cosine
similarity.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelInfo
		if debugFlag || os.Getenv("DEBUG") != "" {
			level = slog.LevelDebug
		}
		// Stderr keeps stdout free for command output and MCP JSON-RPC.
		slog.SetDefault(log.New(log.Config{Level: level}))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}
