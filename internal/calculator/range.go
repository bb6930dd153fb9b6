package calculator

import (
	"errors"
	"math"

	"OptionSentinel/internal/model"
)

// CalculateRange returns the highest high and lowest low of the given bars.
// The quote feed only serves a few months of history, so this is the best
// available stand-in for the 52-week range.
func CalculateRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// ChangePercent returns the intraday move of current against open, in percent.
func ChangePercent(current, open float64) float64 {
	if open == 0 {
		return 0
	}
	return (current - open) / open * 100
}
