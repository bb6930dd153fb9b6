// Package scheduler runs cron-driven scans and answers bot commands.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"OptionSentinel/internal/analyzer"
	"OptionSentinel/internal/model"
	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/recorder"
)

// maxDetailedPicks caps the per-recommendation messages sent after a scan.
const maxDetailedPicks = 10

// Analyzer is the part of the analysis engine the scheduler drives.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error)
	AnalyzeMany(ctx context.Context, symbols []string, concurrency int) []model.AnalysisResult
}

// Sender delivers formatted reports.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the scan job and the bot commands.
type Scheduler struct {
	Cron        *cron.Cron
	Analyzer    Analyzer
	Notifier    Sender
	Recorder    recorder.Recorder
	Symbols     []string
	Concurrency int
	Ctx         context.Context

	// scanning guards against overlapping scans.
	scanning sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a Analyzer, n Sender, rec recorder.Recorder, symbols []string, concurrency int) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Analyzer:    a,
		Notifier:    n,
		Recorder:    rec,
		Symbols:     symbols,
		Concurrency: concurrency,
		Ctx:         ctx,
	}
}

// Register adds the scan job.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, func() {
		if _, err := s.RunScan(s.Ctx, "cron"); err != nil {
			log.Error().Err(err).Msg("scheduled scan failed")
		}
	}); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Symbols)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// ErrScanRunning is returned when a scan is requested while another is in progress.
var ErrScanRunning = errors.New("scan already running")

// RunScan analyses every configured symbol, stores the run and sends the report.
func (s *Scheduler) RunScan(ctx context.Context, trigger string) (*recorder.Run, error) {
	if !s.scanning.TryLock() {
		return nil, ErrScanRunning
	}
	defer s.scanning.Unlock()

	log.Info().Str("trigger", trigger).Int("symbols", len(s.Symbols)).Msg("running scan")
	run := recorder.NewRun(trigger, len(s.Symbols))
	run.Results = s.Analyzer.AnalyzeMany(ctx, s.Symbols, s.Concurrency)
	run.FinishedAt = time.Now()

	if err := s.Recorder.RecordRun(run); err != nil {
		log.Error().Err(err).Str("run", run.ID).Msg("record run failed")
	}

	s.trySend(ctx, notifier.FormatScanSummary(run.Results, run.Symbols, run.FinishedAt.Sub(run.StartedAt)))
	sent := 0
	for i := range run.Results {
		res := &run.Results[i]
		if res.Tier != model.TierHigh || !res.Recommendation.Archetype.TakesPosition() {
			continue
		}
		if sent == maxDetailedPicks {
			break
		}
		s.trySend(ctx, notifier.FormatRecommendation(res))
		sent++
	}
	return run, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	// Group chats address commands as /cmd@BotName.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		res, err := s.Analyzer.Analyze(ctx, symbol)
		if err != nil {
			if errors.Is(err, analyzer.ErrNoData) {
				return fmt.Sprintf("No market data for %s.", symbol)
			}
			return fmt.Sprintf("Analysis of %s failed: %v", symbol, err)
		}
		return notifier.FormatRecommendation(res)
	case "/summary":
		sum, err := s.Recorder.LatestRun(5)
		if errors.Is(err, recorder.ErrNoRuns) {
			return "No scan has been recorded yet."
		}
		if err != nil {
			return fmt.Sprintf("Could not load the latest scan: %v", err)
		}
		return notifier.FormatStoredSummary(sum)
	case "/scan":
		go func() {
			if _, err := s.RunScan(s.Ctx, "telegram"); err != nil {
				s.trySend(s.Ctx, fmt.Sprintf("Scan not started: %v", err))
			}
		}()
		return fmt.Sprintf("Scanning %d symbols, the report follows when done.", len(s.Symbols))
	default:
		return notifier.HelpText
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification failed")
	}
}
