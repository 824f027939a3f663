package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ragbase/ragbase/internal/app"
	"github.com/ragbase/ragbase/internal/config"
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add content to the knowledge base",
	Long: `Add stores the given text as a resource, splits it into chunks,
embeds each chunk, and persists the vectors for semantic search.

Content is read from the argument, or from stdin when no argument is
given:

  ragbase add "The sky is blue. Water boils at 100C."
  cat notes.txt | ragbase add`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var content string
	if len(args) == 1 {
		content = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = string(data)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no content provided")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ValidateAPIKey(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = a.Close() }()

	result, err := a.Ingestor.Ingest(ctx, content)
	if err != nil {
		return fmt.Errorf("ingesting content: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Resource %s created with %d chunks.\n", result.ResourceID, result.ChunkCount)
	if result.EmbeddingFailed {
		fmt.Fprintln(out, "Warning: embedding failed; the resource is stored but not searchable yet.")
	}
	return nil
}
