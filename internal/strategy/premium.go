package strategy

import (
	"math"

	"OptionSentinel/internal/model"
)

// legQuote is the price and activity used to build one leg.
type legQuote struct {
	Premium float64
	Source  model.PremiumSource
	Volume  float64
	OpenInt float64
	Expiry  string
}

// quoteFor reads the market premium for strike from the chain, falling back to
// FallbackPremium when the strike is missing or has not traded.
func quoteFor(chain *model.OptionChainSnapshot, strike float64, typ model.OptionType, spot float64) legQuote {
	if rec := chain.Strike(strike); rec != nil {
		if q := rec.Quote(typ); q != nil && q.LastPrice > 0 {
			expiry := q.ExpiryDate
			if expiry == "" {
				expiry = chain.NearestExpiry()
			}
			return legQuote{
				Premium: q.LastPrice,
				Source:  model.PremiumMarket,
				Volume:  q.Volume,
				OpenInt: q.OpenInterest,
				Expiry:  expiry,
			}
		}
	}
	return legQuote{
		Premium: FallbackPremium(strike, spot, typ),
		Source:  model.PremiumFallback,
		Expiry:  chain.NearestExpiry(),
	}
}

// floorQuote replaces a non-positive premium with floor and flags the leg as a
// fallback. Positive quotes pass through untouched.
func floorQuote(q legQuote, floor float64) legQuote {
	if q.Premium > 0 {
		return q
	}
	q.Premium = floor
	q.Source = model.PremiumFallback
	return q
}

// FallbackPremium estimates a premium from moneyness alone: intrinsic value plus
// 20 in the money, 50 less the distance out of the money (at least 10), and 25
// within 2% of spot. It is a coarse placeholder and legs priced this way are
// flagged as PremiumFallback.
func FallbackPremium(strike, spot float64, typ model.OptionType) float64 {
	if spot <= 0 {
		return 25
	}
	moneyness := strike / spot
	if typ == model.Put {
		switch {
		case moneyness > 1.02:
			return math.Max(strike-spot+20, 5)
		case moneyness < 0.98:
			return math.Max(10, 50-(spot-strike))
		default:
			return 25
		}
	}
	switch {
	case moneyness < 0.98:
		return math.Max(spot-strike+20, 5)
	case moneyness > 1.02:
		return math.Max(10, 50-(strike-spot))
	default:
		return 25
	}
}
