package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OptionSentinel/internal/model"
)

func openTemp(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sentinel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func result(symbol string, a model.Archetype, final int, invest float64) model.AnalysisResult {
	rec := model.StrategyRecommendation{
		Archetype:       a,
		Intended:        a,
		Investment:      invest,
		FinalConfidence: final,
	}
	if a.TakesPosition() {
		rec.Legs = []model.TradeLeg{{Action: model.Buy, Type: model.Call, Strike: 1000, Premium: 30, Source: model.PremiumMarket, Lots: 1, Units: 250}}
		rec.Backtest = &model.BacktestResult{Score: 70, Verdict: model.VerdictStrongBuy}
	}
	return model.AnalysisResult{
		Symbol:         symbol,
		Price:          model.PriceSnapshot{CurrentPrice: 1000},
		BaseConfidence: final,
		Recommendation: rec,
		Tier:           model.TierFor(final),
		AnalyzedAt:     time.Now(),
	}
}

func TestLatestRun_Empty(t *testing.T) {
	_, err := openTemp(t).LatestRun(5)
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestRecordRun(t *testing.T) {
	r := openTemp(t)

	old := NewRun("cron", 1)
	old.StartedAt = time.Now().Add(-time.Hour)
	old.Results = []model.AnalysisResult{result("OLD", model.LongCall, 90, 1000)}
	require.NoError(t, r.RecordRun(old))

	run := NewRun("cli", 4)
	run.Results = []model.AnalysisResult{
		result("RELIANCE", model.BullCallSpread, 55, 20000),
		result("TCS", model.LongCall, 72, 9000),
		result("IRFC", model.NoFnOTrading, 0, 0),
		result("SBIN", model.IronCondor, 41, 15000),
	}
	require.NoError(t, r.RecordRun(run))

	s, err := r.LatestRun(2)
	require.NoError(t, err)
	assert.Equal(t, run.ID, s.ID)
	assert.Equal(t, "cli", s.Trigger)
	assert.Equal(t, 4, s.Symbols)
	assert.Equal(t, 4, s.Analyzed)
	assert.Equal(t, map[model.Tier]int{model.TierHigh: 2, model.TierMedium: 1, model.TierLow: 1}, s.Counts)
	require.Len(t, s.Top, 2)
	assert.Equal(t, "TCS", s.Top[0].Symbol)
	assert.Equal(t, "Long Call", s.Top[0].Archetype)
	assert.Equal(t, model.TierHigh, s.Top[0].Tier)
	assert.Equal(t, "RELIANCE", s.Top[1].Symbol)

	var legs string
	err = r.db.QueryRow(`SELECT legs FROM recommendations WHERE symbol = 'TCS'`).Scan(&legs)
	require.NoError(t, err)
	assert.Contains(t, legs, `"Source":"MARKET"`)

	var verdict sql.NullString
	err = r.db.QueryRow(`SELECT backtest_verdict FROM recommendations WHERE symbol = 'IRFC'`).Scan(&verdict)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(NewRun("cli", 0)))
	_, err := r.LatestRun(1)
	assert.ErrorIs(t, err, ErrNoRuns)
	assert.NoError(t, r.Close())
}
