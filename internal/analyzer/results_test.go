package analyzer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"OptionSentinel/internal/collector"
	"OptionSentinel/internal/model"
)

func TestResultSet_TiersAndOrder(t *testing.T) {
	s := NewResultSet()
	s.Add(model.AnalysisResult{Symbol: "A", Tier: model.TierLow})
	s.Add(model.AnalysisResult{Symbol: "B", Tier: model.TierHigh})
	s.Add(model.AnalysisResult{Symbol: "C", Tier: model.TierHigh})
	s.Add(model.AnalysisResult{Symbol: "D", Tier: model.TierMedium})

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, map[model.Tier]int{model.TierHigh: 2, model.TierMedium: 1, model.TierLow: 1}, s.Counts())
	assert.Equal(t, []string{"B", "C"}, symbolsOf(s.High()))
	assert.Equal(t, []string{"D"}, symbolsOf(s.Medium()))
	assert.Equal(t, []string{"A"}, symbolsOf(s.Low()))
	assert.Equal(t, []string{"A", "B", "C", "D"}, symbolsOf(s.Results()))
}

func TestResultSet_ConcurrentAdd(t *testing.T) {
	s := NewResultSet()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(model.AnalysisResult{Tier: model.TierMedium})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
	assert.Equal(t, 50, s.Counts()[model.TierMedium])
}

func TestAnalyzeInto_AppendsAfterExisting(t *testing.T) {
	a := New(DepsFrom(collector.NewDemo(), nil), Options{})
	s := NewResultSet()
	s.Add(model.AnalysisResult{Symbol: "MANUAL", Tier: model.TierLow})

	a.AnalyzeInto(context.Background(), []string{"TCS", "IRFC"}, 2, s)
	assert.Equal(t, []string{"MANUAL", "TCS", "IRFC"}, symbolsOf(s.Results()))
}

func symbolsOf(rs []model.AnalysisResult) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Symbol)
	}
	return out
}
