// Package recorder persists analysis runs.
package recorder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"OptionSentinel/internal/model"
)

// ErrNoRuns is returned when no run has been recorded yet.
var ErrNoRuns = errors.New("recorder: no runs recorded")

// Run is one batch of analyses, from a scan or an ad-hoc request.
type Run struct {
	ID         string
	Trigger    string // "cron", "cli" or "telegram"
	StartedAt  time.Time
	FinishedAt time.Time
	Symbols    int // instruments requested
	Results    []model.AnalysisResult
}

// NewRun starts a run with a fresh identifier.
func NewRun(trigger string, symbols int) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now(),
		Symbols:   symbols,
	}
}

// Pick is a stored recommendation in a run summary.
type Pick struct {
	Symbol          string
	Archetype       string
	Tier            model.Tier
	FinalConfidence int
	Investment      float64
}

// RunSummary is the stored digest of a run.
type RunSummary struct {
	ID         string
	Trigger    string
	StartedAt  time.Time
	FinishedAt time.Time
	Symbols    int
	Analyzed   int
	Counts     map[model.Tier]int
	// Top holds the best accepted recommendations, highest confidence first.
	Top []Pick
}

// Recorder persists analysis runs for later review.
type Recorder interface {
	RecordRun(run *Run) error
	LatestRun(top int) (*RunSummary, error)
	Close() error
}
