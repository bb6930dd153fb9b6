package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/scheduler"
)

var (
	scanDemo   bool
	scanNotify bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [SYMBOL...]",
	Short: "Run one scan, record it and print the summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAnalyzer(newSource(scanDemo), nil, scanDemo)
		rec := openRecorder()
		defer rec.Close()

		var sender scheduler.Sender
		if scanNotify {
			if err := cfg.RequireTelegram(); err != nil {
				return err
			}
			sender = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy)
		}

		symbols := scanSymbols(args, scanDemo)
		sched := scheduler.NewScheduler(cmd.Context(), a, sender, rec, symbols, cfg.Analysis.Concurrency)

		run, err := sched.RunScan(cmd.Context(), "cli")
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		log.Info().Str("run", run.ID).Int("results", len(run.Results)).Msg("scan recorded")

		summary := notifier.FormatScanSummary(run.Results, run.Symbols, run.FinishedAt.Sub(run.StartedAt))
		fmt.Fprintln(cmd.OutOrStdout(), notifier.PlainText(summary))
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanDemo, "demo", false, "use the built-in offline data set")
	scanCmd.Flags().BoolVar(&scanNotify, "notify", false, "also send the results to Telegram")
}
