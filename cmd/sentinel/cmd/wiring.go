package cmd

import (
	"strings"

	"github.com/rs/zerolog/log"

	"OptionSentinel/internal/analyzer"
	"OptionSentinel/internal/collector"
	"OptionSentinel/internal/recorder"
)

// newSource returns the live collector, or the offline demo data set.
func newSource(demo bool) analyzer.Source {
	if demo {
		return collector.NewDemo()
	}
	ds := cfg.DataSource
	return collector.New(collector.Options{
		YahooBaseURL:  ds.YahooBaseURL,
		NSEBaseURL:    ds.NSEBaseURL,
		GoogleNewsURL: ds.GoogleNewsURL,
		YahooNewsURL:  ds.YahooNewsURL,
		NewsEnabled:   !ds.NewsDisabled,
		NSERatePerSec: ds.NSERatePerSec,
		Proxy:         ds.Proxy,
		Timeout:       cfg.Analysis.FetchTimeout,
	})
}

func newAnalyzer(src analyzer.Source, m analyzer.Metrics, demo bool) *analyzer.Analyzer {
	opts := analyzer.Options{
		FetchTimeout:  cfg.Analysis.FetchTimeout,
		RequestPacing: cfg.Analysis.Pacing(),
		HistoryDays:   cfg.Analysis.HistoryDays,
	}
	if demo {
		opts.RequestPacing = 0
	}
	return analyzer.New(analyzer.DepsFrom(src, m), opts)
}

// openRecorder falls back to a noop recorder when SQLite is unavailable.
func openRecorder() recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

// scanSymbols picks the symbols for a scan: arguments first, then the
// configured list, then the demo set or the full F&O universe.
func scanSymbols(args []string, demo bool) []string {
	if len(args) > 0 {
		out := make([]string, 0, len(args))
		for _, a := range args {
			if s := strings.ToUpper(strings.TrimSpace(a)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if len(cfg.Symbols) > 0 {
		return cfg.Symbols
	}
	if demo {
		return collector.NewDemo().Symbols()
	}
	return collector.Universe()
}
