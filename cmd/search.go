package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ragbase/ragbase/internal/app"
	"github.com/ragbase/ragbase/internal/config"
	"github.com/ragbase/ragbase/internal/knowledge"
)

var (
	searchLimitFlag int32
	searchFloorFlag float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the knowledge base by semantic similarity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, strings.Join(args, " "))
	},
}

func init() {
	searchCmd.Flags().Int32Var(&searchLimitFlag, "limit", 0, "maximum results (default from config)")
	searchCmd.Flags().Float64Var(&searchFloorFlag, "floor", -1, "similarity floor in [0,1] (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, query string) error {
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

	var opts []knowledge.SearchOption
	if searchLimitFlag > 0 {
		opts = append(opts, knowledge.WithLimit(searchLimitFlag))
	}
	if searchFloorFlag >= 0 {
		opts = append(opts, knowledge.WithSimilarityFloor(searchFloorFlag))
	}

	results, err := a.Retriever.FindRelevant(ctx, query, opts...)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No relevant content found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(out, "%d. [%.2f] %s\n", i+1, r.Similarity, strings.TrimSpace(r.Content))
	}
	return nil
}
