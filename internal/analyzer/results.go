package analyzer

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"OptionSentinel/internal/model"
)

type entry struct {
	order  int
	result model.AnalysisResult
}

// ResultSet collects analysis results from concurrent workers and buckets
// them by confidence tier. Results keep their submission order.
type ResultSet struct {
	mu      sync.Mutex
	entries []entry
	seq     int
}

func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Add appends r after everything added or reserved so far.
func (s *ResultSet) Add(r model.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{order: s.seq, result: r})
	s.seq++
}

// reserve claims n consecutive order slots and returns the first.
func (s *ResultSet) reserve(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	first := s.seq
	s.seq += n
	return first
}

func (s *ResultSet) put(order int, r model.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{order: order, result: r})
}

// Results returns a snapshot of every result in submission order.
func (s *ResultSet) Results() []model.AnalysisResult {
	return s.filter(func(model.AnalysisResult) bool { return true })
}

func (s *ResultSet) High() []model.AnalysisResult   { return s.tier(model.TierHigh) }
func (s *ResultSet) Medium() []model.AnalysisResult { return s.tier(model.TierMedium) }
func (s *ResultSet) Low() []model.AnalysisResult    { return s.tier(model.TierLow) }

// Counts returns the number of results per tier.
func (s *ResultSet) Counts() map[model.Tier]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[model.Tier]int{model.TierHigh: 0, model.TierMedium: 0, model.TierLow: 0}
	for _, e := range s.entries {
		counts[e.result.Tier]++
	}
	return counts
}

func (s *ResultSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *ResultSet) tier(t model.Tier) []model.AnalysisResult {
	return s.filter(func(r model.AnalysisResult) bool { return r.Tier == t })
}

func (s *ResultSet) filter(keep func(model.AnalysisResult) bool) []model.AnalysisResult {
	s.mu.Lock()
	sorted := append([]entry(nil), s.entries...)
	s.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].order < sorted[j].order })
	out := make([]model.AnalysisResult, 0, len(sorted))
	for _, e := range sorted {
		if keep(e.result) {
			out = append(out, e.result)
		}
	}
	return out
}

// AnalyzeMany analyzes symbols on at most concurrency workers and returns the
// results in input order. Instruments without data are left out.
func (a *Analyzer) AnalyzeMany(ctx context.Context, symbols []string, concurrency int) []model.AnalysisResult {
	set := NewResultSet()
	a.AnalyzeInto(ctx, symbols, concurrency, set)
	return set.Results()
}

// AnalyzeInto is AnalyzeMany collecting into a caller-owned set.
func (a *Analyzer) AnalyzeInto(ctx context.Context, symbols []string, concurrency int, set *ResultSet) {
	if concurrency < 1 {
		concurrency = 1
	}
	first := set.reserve(len(symbols))

	var eg errgroup.Group
	eg.SetLimit(concurrency)
	for i, symbol := range symbols {
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res, err := a.Analyze(ctx, symbol)
			if err != nil {
				return nil
			}
			set.put(first+i, *res)
			return nil
		})
	}
	_ = eg.Wait()

	counts := set.Counts()
	log.Info().
		Int("symbols", len(symbols)).
		Int("high", counts[model.TierHigh]).
		Int("medium", counts[model.TierMedium]).
		Int("low", counts[model.TierLow]).
		Msg("batch analysis complete")
}
