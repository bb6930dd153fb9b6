package calculator

import "OptionSentinel/internal/model"

// Technical derives the indicator snapshot from a closing-price series, oldest first.
// It never fails: short or empty series produce neutral values.
func Technical(closes []float64) model.TechnicalSnapshot {
	if len(closes) < 2 {
		var last float64
		if len(closes) == 1 {
			last = closes[0]
		}
		return model.TechnicalSnapshot{RSI: 50, SMA10: last, SMA20: last, Trend: model.TrendSideways}
	}

	rsi, _ := CalculateRSI(closes, RSIPeriod)
	sma10, _ := CalculateSMA(closes, 10)
	sma20, _ := CalculateSMA(closes, 20)

	return model.TechnicalSnapshot{
		RSI:   rsi,
		SMA10: sma10,
		SMA20: sma20,
		Trend: ClassifyTrend(closes),
	}
}
