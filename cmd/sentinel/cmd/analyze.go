package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"OptionSentinel/internal/notifier"
)

var (
	analyzeDemo        bool
	analyzeConcurrency int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL...",
	Short: "Analyse instruments and print their reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAnalyzer(newSource(analyzeDemo), nil, analyzeDemo)

		concurrency := analyzeConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Analysis.Concurrency
		}
		results := a.AnalyzeMany(cmd.Context(), scanSymbols(args, analyzeDemo), concurrency)
		if len(results) == 0 {
			return fmt.Errorf("no data for %v", args)
		}

		out := cmd.OutOrStdout()
		for i := range results {
			fmt.Fprintln(out, notifier.PlainText(notifier.FormatRecommendation(&results[i])))
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDemo, "demo", false, "use the built-in offline data set")
	analyzeCmd.Flags().IntVarP(&analyzeConcurrency, "concurrency", "c", 0, "parallel analyses (default from config)")
}
