package calculator

import "OptionSentinel/internal/model"

// trendBand is the relative move between the two five-day means that counts as a trend.
const trendBand = 0.02

// ClassifyTrend compares the mean of the last five closes with the five before.
// Fewer than ten closes are SIDEWAYS.
func ClassifyTrend(closes []float64) model.Trend {
	n := len(closes)
	if n < 10 {
		return model.TrendSideways
	}
	recent := mean(closes[n-5:])
	older := mean(closes[n-10 : n-5])
	switch {
	case recent > older*(1+trendBand):
		return model.TrendUp
	case recent < older*(1-trendBand):
		return model.TrendDown
	default:
		return model.TrendSideways
	}
}
