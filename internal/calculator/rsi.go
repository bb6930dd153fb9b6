package calculator

import (
	"errors"
)

// RSIPeriod is the lookback used for the relative strength index.
const RSIPeriod = 14

// momentumWindow is the head/tail window of the short-series momentum proxy.
const momentumWindow = 5

// CalculateRSI computes the RSI from the trailing `period` price changes using a
// plain mean of gains and losses. Series shorter than period fall back to a
// momentum proxy, and fewer than five points return the neutral 50.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period {
		return momentumRSI(closes), nil
	}

	start := len(closes) - period
	if start < 1 {
		start = 1
	}
	var gains, losses float64
	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change // make positive
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// momentumRSI maps the change between the first and last five closes onto the RSI scale.
func momentumRSI(closes []float64) float64 {
	if len(closes) < momentumWindow {
		return 50.0 // default when data insufficient
	}
	older := mean(closes[:momentumWindow])
	recent := mean(closes[len(closes)-momentumWindow:])
	if older <= 0 {
		return 50.0
	}
	return clamp(50+(recent-older)/older*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
