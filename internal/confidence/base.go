// Package confidence scores how much an instrument's data supports taking an options position.
package confidence

import (
	"math"

	"OptionSentinel/internal/model"
)

const baseStart = 20

// Inputs bundles everything the base confidence draws on.
type Inputs struct {
	Price        model.PriceSnapshot
	Technical    model.TechnicalSnapshot
	Sentiment    model.SentimentResult
	Fundamentals *model.Fundamentals
	Chain        *model.OptionChainSnapshot
}

// Base computes the 0-100 base confidence. A chain without strikes scores 0.
func Base(in Inputs) int {
	if in.Chain.Empty() {
		return 0
	}

	score := baseStart
	score += rsiBonus(in.Technical.RSI)
	score += trendBonus(in.Technical.Trend)
	score += changeBonus(in.Price.ChangePercent)
	score += sentimentBonus(in.Sentiment)
	score += activityBonus(in.Chain, in.Price.CurrentPrice, in.Technical.Trend)
	score += fundamentalsBonus(in.Fundamentals)
	score += volumeBonus(in.Price.Volume)

	return int(math.Max(0, math.Min(100, float64(score))))
}

func rsiBonus(rsi float64) int {
	switch {
	case rsi >= 40 && rsi <= 60:
		return 15
	case rsi >= 30 && rsi <= 70:
		return 10
	default:
		return 5
	}
}

func trendBonus(t model.Trend) int {
	switch t {
	case model.TrendUp:
		return 15
	case model.TrendSideways:
		return 5
	default:
		return 0
	}
}

func changeBonus(pct float64) int {
	switch {
	case pct > 3:
		return 20
	case pct > 1:
		return 15
	case pct > 0:
		return 10
	case pct > -1:
		return 5
	default:
		return 0
	}
}

func sentimentBonus(s model.SentimentResult) int {
	bonus := 0
	switch s.Momentum {
	case model.MomentumPositive:
		bonus = 15
	case model.MomentumNegative:
		bonus = 5
	default:
		bonus = 10
	}
	if s.Score > 0.3 {
		bonus += 5
	}
	return bonus
}

func fundamentalsBonus(f *model.Fundamentals) int {
	if f == nil {
		return 0
	}
	bonus := 0
	if pe, ok := positive(f.PE); ok {
		switch {
		case pe >= 10 && pe <= 20:
			bonus += 8
		case pe >= 5 && pe <= 30:
			bonus += 5
		}
	}
	if pb, ok := positive(f.PB); ok {
		switch {
		case pb >= 1 && pb <= 3:
			bonus += 6
		case pb >= 0.5 && pb <= 5:
			bonus += 3
		}
	}
	if roe, ok := positive(f.ROE); ok {
		switch {
		case roe > 15:
			bonus += 6
		case roe > 10:
			bonus += 3
		}
	}
	return bonus
}

// positive treats a missing or zero ratio as unknown.
func positive(v *float64) (float64, bool) {
	if v == nil || *v == 0 {
		return 0, false
	}
	return *v, true
}

func volumeBonus(volume float64) int {
	switch {
	case volume > 100000:
		return 5
	case volume > 50000:
		return 2
	default:
		return 0
	}
}
