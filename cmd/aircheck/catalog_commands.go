package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aircheck/internal/catalog"
	"aircheck/internal/feed"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and maintain the episode catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogPruneCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cataloged episodes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			episodes, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list episodes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(episodes) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}

			headers := []string{"KEY", "SHOW", "PUBLISHED", "PARTS", "SIZE"}
			rows := make([][]string, 0, len(episodes))
			for _, episode := range episodes {
				rows = append(rows, []string{
					episode.Key,
					episode.ShowName,
					episode.PublishedAt.Format("2006-01-02 15:04"),
					strconv.Itoa(len(episode.Parts)),
					formatSize(episodeSize(episode)),
				})
			}

			if isTerminal(out) {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{
					alignLeft, alignLeft, alignLeft, alignRight, alignRight,
				}))
				return nil
			}
			fmt.Fprintln(out, strings.Join(headers, "\t"))
			for _, row := range rows {
				fmt.Fprintln(out, strings.Join(row, "\t"))
			}
			return nil
		},
	}
}

func newCatalogPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Evict episodes past the retention window and rebuild the feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			age := cfg.RetentionAge()
			if days > 0 {
				age = time.Duration(days) * 24 * time.Hour
			}
			evicted, err := store.EvictOlderThan(cmd.Context(), time.Now().Add(-age))
			if err != nil {
				return fmt.Errorf("evict episodes: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, episode := range evicted {
				fmt.Fprintf(out, "Evicted %s\n", episode.Key)
			}
			fmt.Fprintf(out, "Evicted %d episodes\n", len(evicted))

			episodes, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list episodes: %w", err)
			}
			data, err := feed.Render(episodes, feed.ChannelFromConfig(cfg), feed.DiskSizes(cfg.Paths.DataDir))
			if err != nil {
				return fmt.Errorf("render feed: %w", err)
			}
			if err := feed.WriteFile(cfg.FeedPath(), data); err != nil {
				return fmt.Errorf("write feed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Override the configured retention window in days")
	return cmd
}

func episodeSize(episode catalog.Episode) int64 {
	var total int64
	for _, part := range episode.Parts {
		total += part.SizeBytes
	}
	return total
}

func formatSize(bytes int64) string {
	const mib = 1024 * 1024
	if bytes < mib {
		return fmt.Sprintf("%d KiB", bytes/1024)
	}
	return fmt.Sprintf("%.1f MiB", float64(bytes)/mib)
}
