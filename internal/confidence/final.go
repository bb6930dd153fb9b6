package confidence

import (
	"math"

	"OptionSentinel/internal/model"
)

const (
	dataWeight       = 0.5
	historicalWeight = 0.25
	riskRewardWeight = 0.25

	// neutralBacktestScore stands in for a missing backtest.
	neutralBacktestScore = 50.0
)

// RiskRewardScore maps a risk:reward ratio onto 0-100.
func RiskRewardScore(r float64) float64 {
	switch {
	case r >= 1.0:
		return math.Min(100, 50+25*r)
	case r >= 0.5:
		return 25 + 50*r
	default:
		return math.Max(0, 50*r)
	}
}

// Breakdown computes the weighted components of the final confidence.
func Breakdown(base int, backtest *model.BacktestResult, riskReward float64) model.ConfidenceBreakdown {
	b := model.ConfidenceBreakdown{
		BaseConfidence:  base,
		DataQuality:     float64(base) * dataWeight,
		BacktestScore:   neutralBacktestScore,
		RiskRewardRatio: riskReward,
	}
	if backtest != nil {
		b.HasBacktest = true
		b.BacktestScore = backtest.Score
	}
	b.HistoricalScore = b.BacktestScore * historicalWeight
	b.RiskRewardScore = RiskRewardScore(riskReward) * riskRewardWeight
	return b
}

// Score sums a breakdown into the truncated 0-100 final confidence.
func Score(b model.ConfidenceBreakdown) int {
	total := b.DataQuality + b.HistoricalScore + b.RiskRewardScore
	return int(math.Max(0, math.Min(100, total)))
}

// Final returns the final confidence for the given inputs.
func Final(base int, backtest *model.BacktestResult, riskReward float64) int {
	return Score(Breakdown(base, backtest, riskReward))
}

// Annotate returns a copy of rec carrying its final confidence and breakdown.
// The input is left untouched.
func Annotate(base int, rec model.StrategyRecommendation) model.StrategyRecommendation {
	b := Breakdown(base, rec.Backtest, rec.RiskReward)
	out := rec
	out.Legs = append([]model.TradeLeg(nil), rec.Legs...)
	out.Breakevens = append([]float64(nil), rec.Breakevens...)
	if rec.Backtest != nil {
		bt := *rec.Backtest
		out.Backtest = &bt
	}
	out.FinalConfidence = Score(b)
	out.Breakdown = &b
	return out
}
