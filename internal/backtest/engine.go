// Package backtest replays a strategy's payoff zone over recent closing prices.
package backtest

import (
	"fmt"
	"math"

	"OptionSentinel/internal/model"
)

const (
	// horizon is how many sessions after entry a window is closed.
	horizon = 5
	// minPoints is the shortest series worth scoring.
	minPoints = 10

	noDataScore  = 42.0
	unknownScore = 50.0

	straddleMoveThreshold = 0.02
	condorQuietThreshold  = 0.015
)

// Params carries the strike geometry of the strategy under test. Fields not
// used by an archetype are ignored.
type Params struct {
	// Strike is the bought strike of single-leg strategies, straddles and spreads.
	Strike float64
	// SellStrike is the sold strike of a vertical spread.
	SellStrike float64
	// Cost is the per-unit premium paid, or net debit of a spread.
	Cost float64
	// ShortPut and ShortCall are the inner strikes of an iron condor.
	ShortPut  float64
	ShortCall float64
	// Credit is the per-unit net credit of an iron condor.
	Credit float64
}

// window is one entry/exit pair of the sliding replay.
type window struct {
	entry, exit float64
}

// classifier reports whether a window counts toward the move and profit tallies.
type classifier func(w window) (move, profit bool)

// Evaluate scores archetype against closes, oldest first.
// The result is deterministic for identical input.
func Evaluate(archetype model.Archetype, closes []float64, p Params) model.BacktestResult {
	var classify classifier
	var moveWeight float64
	var label string
	switch archetype {
	case model.BullCallSpread:
		classify, moveWeight, label = bullCallSpread(p), 0.3, "directional accuracy"
	case model.LongCall:
		classify, moveWeight, label = longCall(p), 0.4, "directional accuracy"
	case model.BearPutSpread:
		classify, moveWeight, label = bearPutSpread(p), 0.3, "directional accuracy"
	case model.LongPut:
		classify, moveWeight, label = longPut(p), 0.4, "directional accuracy"
	case model.LongStraddle:
		classify, moveWeight, label = longStraddle(p), 0.4, "high volatility periods"
	case model.IronCondor:
		classify, moveWeight, label = ironCondor(p), 0.4, "low volatility periods"
	default:
		return model.BacktestResult{
			Score:   unknownScore,
			Verdict: model.VerdictUnknown,
			Reason:  fmt.Sprintf("no evaluator for %s", archetype),
		}
	}

	if len(closes) < minPoints {
		return NoData("insufficient historical data")
	}
	return replay(closes, classify, moveWeight, label)
}

// NoData is the neutral result used when history is missing or too short.
func NoData(reason string) model.BacktestResult {
	return model.BacktestResult{Score: noDataScore, Verdict: model.VerdictNoData, Reason: reason}
}

// VerdictFor maps a score to its verdict.
func VerdictFor(score float64) model.Verdict {
	switch {
	case score >= 65:
		return model.VerdictStrongBuy
	case score >= 40:
		return model.VerdictCautious
	default:
		return model.VerdictAvoid
	}
}

func replay(closes []float64, classify classifier, moveWeight float64, label string) model.BacktestResult {
	total := len(closes) - horizon
	var moves, profits int
	for i := 0; i < total; i++ {
		move, profit := classify(window{entry: closes[i], exit: closes[i+horizon]})
		if move {
			moves++
		}
		if profit {
			profits++
		}
	}

	movePct := float64(moves) / float64(total) * 100
	profitPct := float64(profits) / float64(total) * 100
	score := movePct*moveWeight + profitPct*(1-moveWeight)

	return model.BacktestResult{
		Score:     score,
		Verdict:   VerdictFor(score),
		Reason:    fmt.Sprintf("%.1f%% profitable scenarios, %.1f%% %s", profitPct, movePct, label),
		Scenarios: total,
		MovePct:   movePct,
		ProfitPct: profitPct,
	}
}

func relativeMove(w window) float64 {
	if w.entry == 0 {
		return 0
	}
	return math.Abs(w.exit-w.entry) / w.entry
}
