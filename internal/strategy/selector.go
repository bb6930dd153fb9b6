// Package strategy picks an options archetype for an instrument and turns it into trade legs.
package strategy

import (
	"math"

	"OptionSentinel/internal/confidence"
	"OptionSentinel/internal/model"
)

// Volatility is the option-volume activity level around the money.
type Volatility string

const (
	VolatilityLow    Volatility = "LOW"
	VolatilityMedium Volatility = "MEDIUM"
	VolatilityHigh   Volatility = "HIGH"
)

// volatilityWindow is the distance from ATM included in the volume classification.
const volatilityWindow = 200

// ClassifyVolatility grades combined call and put volume within 200 points of the ATM strike.
func ClassifyVolatility(chain *model.OptionChainSnapshot) Volatility {
	if chain.Empty() {
		return VolatilityLow
	}
	atm := confidence.ATMStrike(chain.UnderlyingValue)

	var total float64
	count := 0
	for _, rec := range chain.Strikes {
		if math.Abs(rec.StrikePrice-atm) > volatilityWindow {
			continue
		}
		if rec.Call != nil {
			total += rec.Call.Volume
		}
		if rec.Put != nil {
			total += rec.Put.Volume
		}
		count++
	}
	avg := total / math.Max(float64(count), 1)

	switch {
	case total > 50000 && avg > 5000:
		return VolatilityHigh
	case total > 20000 && avg > 2000:
		return VolatilityMedium
	default:
		return VolatilityLow
	}
}

// Signal is what the selector decides on.
type Signal struct {
	HasChain      bool
	Trend         model.Trend
	RSI           float64
	ChangePercent float64
	Confidence    int
	Volatility    Volatility
}

// Select walks the decision tree in priority order. Every branch ends in an archetype.
func Select(s Signal) model.Archetype {
	change := s.ChangePercent
	switch {
	case !s.HasChain:
		return model.NoFnOTrading
	case (s.Trend == model.TrendUp && change > 0.5) || change > 2:
		if s.Confidence >= 70 {
			return model.LongCall
		}
		return model.BullCallSpread
	case (s.Trend == model.TrendDown && change < -0.5) || change < -2:
		if s.Confidence >= 70 {
			return model.LongPut
		}
		return model.BearPutSpread
	case s.Volatility == VolatilityHigh:
		return model.LongStraddle
	case s.RSI > 65:
		return model.BearPutSpread
	case s.RSI < 35:
		return model.BullCallSpread
	case s.Confidence >= 60 && s.Trend == model.TrendSideways && math.Abs(change) < 1.5:
		return model.IronCondor
	case s.Confidence >= 50:
		if change >= 0 {
			return model.BullCallSpread
		}
		return model.BearPutSpread
	default:
		return model.Watch
	}
}
