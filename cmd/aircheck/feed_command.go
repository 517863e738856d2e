package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aircheck/internal/feed"
)

func newFeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Regenerate the podcast feed from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

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

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d episodes\n", cfg.FeedPath(), len(episodes))
			return nil
		},
	}
}
