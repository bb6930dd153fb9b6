package calculator

import (
	"errors"

	"OptionSentinel/internal/model"
)

// CalculateSMA computes the simple moving average over the last `period` prices.
// Shorter series average every available point.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) == 0 {
		return 0, errors.New("no prices provided")
	}
	start := len(prices) - period
	if start < 0 {
		start = 0
	}
	return mean(prices[start:]), nil
}

// ExtractCloses returns the closing prices of bars in order.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
