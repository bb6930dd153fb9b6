package analyzer

import (
	"context"

	"OptionSentinel/internal/model"
)

// PriceSource returns the latest snapshot of an underlying.
type PriceSource interface {
	FetchPrice(ctx context.Context, symbol string) (*model.PriceSnapshot, error)
}

// ChainSource returns the option chain of an underlying. A nil or empty chain
// means the instrument has no listed options.
type ChainSource interface {
	FetchOptionChain(ctx context.Context, symbol string) (*model.OptionChainSnapshot, error)
}

type SentimentSource interface {
	FetchSentiment(ctx context.Context, symbol string) (model.SentimentResult, error)
}

type FundamentalsSource interface {
	FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error)
}

// HistorySource returns closing prices, oldest first, for the backtest.
type HistorySource interface {
	FetchHistoricalCloses(ctx context.Context, symbol string, days int) ([]float64, error)
}

type LotSizer interface {
	LotSize(symbol string) int
}

// Metrics receives per-instrument outcomes.
type Metrics interface {
	AnalysisCompleted(outcome Outcome, seconds float64)
	RecommendationMade(archetype string, tier model.Tier)
	FetchFailed(source string)
}

type nopMetrics struct{}

func (nopMetrics) AnalysisCompleted(Outcome, float64)    {}
func (nopMetrics) RecommendationMade(string, model.Tier) {}
func (nopMetrics) FetchFailed(string)                    {}

// Deps wires the analyzer to its data sources. Sentiment, Fundamentals and
// Metrics are optional.
type Deps struct {
	Prices       PriceSource
	Chains       ChainSource
	Sentiment    SentimentSource
	Fundamentals FundamentalsSource
	History      HistorySource
	Lots         LotSizer
	Metrics      Metrics
}

// Source is satisfied by collectors that serve every port at once.
type Source interface {
	PriceSource
	ChainSource
	SentimentSource
	FundamentalsSource
	HistorySource
	LotSizer
}

// DepsFrom wires every port to src.
func DepsFrom(src Source, m Metrics) Deps {
	return Deps{
		Prices:       src,
		Chains:       src,
		Sentiment:    src,
		Fundamentals: src,
		History:      src,
		Lots:         src,
		Metrics:      m,
	}
}
