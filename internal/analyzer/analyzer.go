// Package analyzer runs the per-instrument pipeline: data retrieval, scoring,
// strategy selection and the final confidence gate.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"OptionSentinel/internal/calculator"
	"OptionSentinel/internal/confidence"
	"OptionSentinel/internal/model"
	"OptionSentinel/internal/strategy"
)

// ErrNoData marks an instrument whose price or option chain could not be retrieved.
var ErrNoData = errors.New("analyzer: no data")

// MinFinalConfidence is the lowest final confidence a position may carry.
const MinFinalConfidence = 40

// Outcome classifies a finished analysis for metrics.
type Outcome string

const (
	OutcomeRecommended Outcome = "recommended"
	OutcomeRejected    Outcome = "rejected"
	OutcomeNoTrade     Outcome = "no_trade"
	OutcomeNoData      Outcome = "no_data"
)

// Options tune timeouts and pacing.
type Options struct {
	// FetchTimeout bounds each collaborator call.
	FetchTimeout time.Duration
	// RequestPacing is slept between dependent calls of one instrument.
	RequestPacing time.Duration
	// HistoryDays is the length of the backtest series.
	HistoryDays int
}

// Analyzer evaluates instruments. It is safe for concurrent use.
type Analyzer struct {
	deps Deps
	opts Options
	now  func() time.Time
}

// New creates an Analyzer. Prices, Chains and Lots are required.
func New(deps Deps, opts Options) *Analyzer {
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 30
	}
	return &Analyzer{deps: deps, opts: opts, now: time.Now}
}

// Analyze runs the full pipeline for symbol. Missing price or chain data
// yields an error wrapping ErrNoData; every other failure degrades in place.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (res *model.AnalysisResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("symbol", symbol).Interface("panic", r).Msg("analysis panicked")
			res, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrNoData, symbol, r)
		}
		a.observe(symbol, res, err, time.Since(start))
	}()
	return a.analyze(ctx, symbol)
}

func (a *Analyzer) analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error) {
	price, err := a.fetchPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if err := a.pace(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoData, symbol, err)
	}

	chain, err := a.fetchChain(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if err := a.pace(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoData, symbol, err)
	}

	sentiment := a.fetchSentiment(ctx, symbol)
	fundamentals := a.fetchFundamentals(ctx, symbol)
	technical := calculator.Technical(price.HistoricalCloses)

	base := confidence.Base(confidence.Inputs{
		Price:        *price,
		Technical:    technical,
		Sentiment:    sentiment,
		Fundamentals: fundamentals,
		Chain:        chain,
	})

	archetype := strategy.Select(strategy.Signal{
		HasChain:      !chain.Empty(),
		Trend:         technical.Trend,
		RSI:           technical.RSI,
		ChangePercent: price.ChangePercent,
		Confidence:    base,
		Volatility:    strategy.ClassifyVolatility(chain),
	})

	var history []float64
	if archetype.TakesPosition() {
		history = a.fetchHistory(ctx, symbol)
	}

	rec := strategy.Build(archetype, strategy.Context{
		Symbol:  symbol,
		Spot:    price.CurrentPrice,
		LotSize: a.deps.Lots.LotSize(symbol),
		Chain:   chain,
		History: history,
	})
	rec = finalize(base, rec)

	return &model.AnalysisResult{
		Symbol:         symbol,
		Price:          *price,
		Technical:      technical,
		Sentiment:      sentiment,
		Fundamentals:   fundamentals,
		BaseConfidence: base,
		Recommendation: rec,
		Tier:           model.TierFor(rec.FinalConfidence),
		AnalyzedAt:     a.now(),
	}, nil
}

// finalize attaches the final confidence and applies the minimum-confidence
// gate. Builder rejections and no-trade outcomes pass through unchanged.
func finalize(base int, rec model.StrategyRecommendation) model.StrategyRecommendation {
	if rec.Archetype == model.NoFnOTrading {
		return rec
	}
	rec = confidence.Annotate(base, rec)
	if !rec.Archetype.TakesPosition() || rec.FinalConfidence >= MinFinalConfidence {
		return rec
	}

	gated := strategy.Reject(rec.Archetype,
		fmt.Sprintf("final confidence %d%% below minimum %d%%", rec.FinalConfidence, MinFinalConfidence),
		rec.Backtest)
	gated.FinalConfidence = rec.FinalConfidence
	gated.Breakdown = rec.Breakdown
	return gated
}

func (a *Analyzer) fetchPrice(ctx context.Context, symbol string) (*model.PriceSnapshot, error) {
	fctx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
	defer cancel()

	price, err := a.deps.Prices.FetchPrice(fctx, symbol)
	if err != nil {
		a.deps.Metrics.FetchFailed("price")
		return nil, fmt.Errorf("%w: %s price: %w", ErrNoData, symbol, err)
	}
	if price == nil || price.CurrentPrice <= 0 {
		return nil, fmt.Errorf("%w: %s has no price", ErrNoData, symbol)
	}
	return price, nil
}

func (a *Analyzer) fetchChain(ctx context.Context, symbol string) (*model.OptionChainSnapshot, error) {
	fctx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
	defer cancel()

	chain, err := a.deps.Chains.FetchOptionChain(fctx, symbol)
	if err != nil {
		a.deps.Metrics.FetchFailed("chain")
		return nil, fmt.Errorf("%w: %s option chain: %w", ErrNoData, symbol, err)
	}
	return chain, nil
}

func (a *Analyzer) fetchSentiment(ctx context.Context, symbol string) model.SentimentResult {
	if a.deps.Sentiment == nil {
		return model.NeutralSentiment()
	}
	fctx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
	defer cancel()

	s, err := a.deps.Sentiment.FetchSentiment(fctx, symbol)
	if err != nil {
		a.deps.Metrics.FetchFailed("sentiment")
		log.Warn().Err(err).Str("symbol", symbol).Msg("sentiment unavailable, using neutral")
		return model.NeutralSentiment()
	}
	return s
}

func (a *Analyzer) fetchFundamentals(ctx context.Context, symbol string) *model.Fundamentals {
	if a.deps.Fundamentals == nil {
		return nil
	}
	fctx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
	defer cancel()

	f, err := a.deps.Fundamentals.FetchFundamentals(fctx, symbol)
	if err != nil {
		a.deps.Metrics.FetchFailed("fundamentals")
		log.Debug().Err(err).Str("symbol", symbol).Msg("fundamentals unavailable")
		return nil
	}
	return f
}

func (a *Analyzer) fetchHistory(ctx context.Context, symbol string) []float64 {
	if a.deps.History == nil {
		return nil
	}
	if err := a.pace(ctx); err != nil {
		return nil
	}
	fctx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
	defer cancel()

	closes, err := a.deps.History.FetchHistoricalCloses(fctx, symbol, a.opts.HistoryDays)
	if err != nil {
		a.deps.Metrics.FetchFailed("history")
		log.Warn().Err(err).Str("symbol", symbol).Msg("history unavailable, backtest falls back")
		return nil
	}
	return closes
}

// pace sleeps RequestPacing unless ctx ends first. Only the calling worker waits.
func (a *Analyzer) pace(ctx context.Context) error {
	if a.opts.RequestPacing <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.opts.RequestPacing)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a *Analyzer) observe(symbol string, res *model.AnalysisResult, err error, elapsed time.Duration) {
	outcome := OutcomeOf(res)
	a.deps.Metrics.AnalysisCompleted(outcome, elapsed.Seconds())

	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("analysis abandoned")
		return
	}
	rec := res.Recommendation
	if outcome == OutcomeRecommended {
		a.deps.Metrics.RecommendationMade(rec.Archetype.String(), res.Tier)
	}
	log.Info().
		Str("symbol", symbol).
		Str("strategy", rec.Archetype.String()).
		Int("base", res.BaseConfidence).
		Int("final", rec.FinalConfidence).
		Str("tier", string(res.Tier)).
		Dur("elapsed", elapsed).
		Msg("analysis complete")
}

// OutcomeOf classifies a result; nil means no data.
func OutcomeOf(res *model.AnalysisResult) Outcome {
	switch {
	case res == nil:
		return OutcomeNoData
	case res.Recommendation.Rejected():
		return OutcomeRejected
	case res.Recommendation.Archetype.TakesPosition():
		return OutcomeRecommended
	default:
		return OutcomeNoTrade
	}
}
