package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aircheck/internal/logging"
	"aircheck/internal/run"
	"aircheck/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the schedule and capture the current hour if due",
		Long: "Performs one capture invocation: evicts expired episodes, evaluates the\n" +
			"weekly schedule, records the matched show, splits oversized audio, and\n" +
			"regenerates the podcast feed. Intended to be triggered hourly from cron.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "aircheck*.log", cfg.Logging.RetentionDays)

			lock, err := runlock.New(cfg.LockPath())
			if err != nil {
				return err
			}
			runner := run.New(cfg, store, lock, run.DefaultDeps(cfg, logger), logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			outcome, err := runner.Execute(runCtx, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outcome {
			case run.OutcomeCaptured:
				fmt.Fprintln(out, "Capture complete")
			case run.OutcomeNoMatch:
				fmt.Fprintln(out, "Nothing scheduled for this hour")
			case run.OutcomeSkippedLocked:
				fmt.Fprintln(out, "Another invocation is already running")
			case run.OutcomeDuplicate:
				fmt.Fprintln(out, "This slot was already captured")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Capture immediately, bypassing schedule evaluation")
	return cmd
}
