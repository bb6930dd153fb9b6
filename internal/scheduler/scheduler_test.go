package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OptionSentinel/internal/analyzer"
	"OptionSentinel/internal/collector"
	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/recorder"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *fakeSender) {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	a := analyzer.New(analyzer.DepsFrom(collector.NewDemo(), nil), analyzer.Options{})
	sender := &fakeSender{}
	symbols := []string{"RELIANCE", "SBIN", "NIFTY", "TCS", "IRFC", "NOSUCH"}
	return NewScheduler(context.Background(), a, sender, rec, symbols, 2), sender
}

func TestRegister(t *testing.T) {
	s, _ := newTestScheduler(t)
	assert.NoError(t, s.Register("0 45 15 * * 1-5"))
	assert.Error(t, s.Register("every day"))
}

func TestRunScan(t *testing.T) {
	s, sender := newTestScheduler(t)

	run, err := s.RunScan(context.Background(), "cli")
	require.NoError(t, err)
	assert.Len(t, run.Results, 5)
	assert.Equal(t, 6, run.Symbols)
	require.NotEmpty(t, sender.sent)
	assert.Contains(t, sender.sent[0], "Analysed 5 of 6 symbols")

	sum, err := s.Recorder.LatestRun(5)
	require.NoError(t, err)
	assert.Equal(t, run.ID, sum.ID)
	assert.Equal(t, 5, sum.Analyzed)
}

func TestRunScan_RejectsOverlap(t *testing.T) {
	s, _ := newTestScheduler(t)
	s.scanning.Lock()
	defer s.scanning.Unlock()

	_, err := s.RunScan(context.Background(), "cli")
	assert.ErrorIs(t, err, ErrScanRunning)
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	assert.Equal(t, notifier.HelpText, s.HandleCommand(ctx, "/help"))
	assert.Equal(t, notifier.HelpText, s.HandleCommand(ctx, "hello"))
	assert.Equal(t, "Usage: /analyze SYMBOL", s.HandleCommand(ctx, "/analyze"))
	assert.Equal(t, "No market data for NOSUCH.", s.HandleCommand(ctx, "/analyze nosuch"))

	reply := s.HandleCommand(ctx, "/analyze@OptionSentinelBot irfc")
	assert.True(t, strings.Contains(reply, "IRFC"), reply)
	assert.Contains(t, reply, "No F&amp;O Trading")

	assert.Equal(t, "No scan has been recorded yet.", s.HandleCommand(ctx, "/summary"))
	_, err := s.RunScan(ctx, "cli")
	require.NoError(t, err)
	assert.Contains(t, s.HandleCommand(ctx, "/summary"), "Analysed 5 of 6 symbols")
}
