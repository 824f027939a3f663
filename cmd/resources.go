package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ragbase/ragbase/internal/app"
	"github.com/ragbase/ragbase/internal/config"
)

var resourcesListLimit int32

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Manage stored resources",
}

var resourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resources, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			resources, err := a.Store.ListResources(ctx, resourcesListLimit)
			if err != nil {
				return err
			}
			total, err := a.Store.CountResources(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range resources {
				fmt.Fprintf(out, "%s  %s  %s\n",
					r.ID,
					r.CreatedAt.Format(time.RFC3339),
					summarize(r.Content, 60))
			}
			fmt.Fprintf(out, "%d of %d resources\n", len(resources), total)
			return nil
		})
	},
}

var resourcesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a resource and its chunk count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			res, err := a.Store.GetResource(ctx, args[0])
			if err != nil {
				return err
			}
			chunks, err := a.Store.CountChunks(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %s\n", res.ID)
			fmt.Fprintf(out, "Created: %s\n", res.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Chunks:  %d\n", chunks)
			fmt.Fprintf(out, "Content:\n%s\n", res.Content)
			return nil
		})
	},
}

var resourcesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a resource and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			if err := a.Store.DeleteResource(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resource %s deleted.\n", args[0])
			return nil
		})
	},
}

func init() {
	resourcesListCmd.Flags().Int32Var(&resourcesListLimit, "limit", 100, "maximum resources to list")
	resourcesCmd.AddCommand(resourcesListCmd, resourcesShowCmd, resourcesDeleteCmd)
	rootCmd.AddCommand(resourcesCmd)
}

// withApp loads config, assembles the application, runs fn, and cleans up.
// Store-only commands do not need the embeddings API key.
func withApp(fn func(context.Context, *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = a.Close() }()

	return fn(ctx, a)
}

// summarize collapses whitespace and truncates s to max runes.
func summarize(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
