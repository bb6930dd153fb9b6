package confidence

import (
	"math"

	"OptionSentinel/internal/model"
)

// activityWindow is the distance from the ATM strike included in option activity.
const activityWindow = 100

// Activity aggregates call and put volume and open interest near the money.
type Activity struct {
	CallVolume float64
	PutVolume  float64
	CallOI     float64
	PutOI      float64
}

// ATMStrike rounds spot to the nearest 50-point strike.
func ATMStrike(spot float64) float64 {
	return math.Round(spot/50) * 50
}

// NearMoneyActivity sums activity of strikes within window points of the ATM strike.
func NearMoneyActivity(chain *model.OptionChainSnapshot, spot, window float64) Activity {
	var a Activity
	if chain.Empty() {
		return a
	}
	atm := ATMStrike(spot)
	for _, rec := range chain.Strikes {
		if math.Abs(rec.StrikePrice-atm) > window {
			continue
		}
		if rec.Call != nil {
			a.CallVolume += rec.Call.Volume
			a.CallOI += rec.Call.OpenInterest
		}
		if rec.Put != nil {
			a.PutVolume += rec.Put.Volume
			a.PutOI += rec.Put.OpenInterest
		}
	}
	return a
}

func activityBonus(chain *model.OptionChainSnapshot, fallbackSpot float64, trend model.Trend) int {
	spot := chain.UnderlyingValue
	if spot == 0 {
		spot = fallbackSpot
	}
	a := NearMoneyActivity(chain, spot, activityWindow)

	bonus := 0
	switch total := a.CallVolume + a.PutVolume; {
	case total > 10000:
		bonus += 10
	case total > 1000:
		bonus += 5
	}

	if a.CallVolume > 0 && a.PutVolume > 0 {
		ratio := a.CallVolume / a.PutVolume
		switch {
		case ratio >= 0.5 && ratio <= 2.0:
			bonus += 5
		case ratio > 2.0:
			bonus += skewBonus(trend == model.TrendUp)
		default:
			bonus += skewBonus(trend == model.TrendDown)
		}
	}

	switch oi := a.CallOI + a.PutOI; {
	case oi > 50000:
		bonus += 5
	case oi > 10000:
		bonus += 3
	}
	return bonus
}

func skewBonus(consistent bool) int {
	if consistent {
		return 3
	}
	return 1
}
