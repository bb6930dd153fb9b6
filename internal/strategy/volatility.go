package strategy

import (
	"fmt"

	"OptionSentinel/internal/backtest"
	"OptionSentinel/internal/model"
)

const (
	condorInnerOffset = 50.0
	condorWingWidth   = 100.0

	// Floors for non-positive leg premiums and for an inverted credit.
	condorMinShortPremium = 15.0
	condorMinLongPremium  = 5.0
	condorMinCredit       = 10.0
	condorMinLoss         = 50.0
)

func buildLongStraddle(c Context) model.StrategyRecommendation {
	strike := c.atm()
	call := c.quote(strike, model.Call)
	put := c.quote(strike, model.Put)
	cost := call.Premium + put.Premium

	bt := backtest.Evaluate(model.LongStraddle, c.History, backtest.Params{Strike: strike, Cost: cost})
	if bt.Verdict == model.VerdictAvoid {
		return Reject(model.LongStraddle, avoidReason(bt), &bt)
	}

	lotSize := c.lotSize()
	lots := lotsWithinBudget(cost*float64(lotSize), longStraddleMaxLots)
	units := lots * lotSize
	invest := amount(cost, units)

	return model.StrategyRecommendation{
		Archetype: model.LongStraddle,
		Intended:  model.LongStraddle,
		Legs: []model.TradeLeg{
			newLeg(model.Buy, model.Call, strike, call, lots, units),
			newLeg(model.Buy, model.Put, strike, put, lots, units),
		},
		Strikes:            fmt.Sprintf("%.0f CE + %.0f PE (Both Buy)", strike, strike),
		Expiry:             call.Expiry,
		LotSize:            lotSize,
		Lots:               lots,
		Investment:         invest,
		Margin:             invest,
		MaxProfitUnbounded: true,
		MaxLoss:            invest,
		Breakevens:         []float64{strike - cost, strike + cost},
		RiskReward:         longStraddleRiskReward,
		Backtest:           &bt,
		Rationale:          fmt.Sprintf("High volatility expected: profit outside ₹%.1f to ₹%.1f", strike-cost, strike+cost),
	}
}

// buildIronCondor never rejects. Market quotes are used as they are; only a
// non-positive premium is floored, and that leg is flagged as a fallback.
func buildIronCondor(c Context) model.StrategyRecommendation {
	atm := c.atm()
	sellCallStrike := atm + condorInnerOffset
	buyCallStrike := sellCallStrike + condorWingWidth
	sellPutStrike := atm - condorInnerOffset
	buyPutStrike := sellPutStrike - condorWingWidth

	sellCall := floorQuote(c.quote(sellCallStrike, model.Call), condorMinShortPremium)
	buyCall := floorQuote(c.quote(buyCallStrike, model.Call), condorMinLongPremium)
	sellPut := floorQuote(c.quote(sellPutStrike, model.Put), condorMinShortPremium)
	buyPut := floorQuote(c.quote(buyPutStrike, model.Put), condorMinLongPremium)

	credit := (sellCall.Premium + sellPut.Premium) - (buyCall.Premium + buyPut.Premium)
	if credit <= 0 {
		credit = condorMinCredit
	}
	lossPerUnit := condorWingWidth - credit
	if lossPerUnit <= 0 {
		lossPerUnit = condorMinLoss
	}

	bt := backtest.Evaluate(model.IronCondor, c.History, backtest.Params{
		ShortPut:  sellPutStrike,
		ShortCall: sellCallStrike,
		Credit:    credit,
	})

	lotSize := c.lotSize()
	lots := lotsWithinBudget(lossPerUnit*float64(lotSize), ironCondorMaxLots)
	units := lots * lotSize
	maxLoss := amount(lossPerUnit, units)

	return model.StrategyRecommendation{
		Archetype: model.IronCondor,
		Intended:  model.IronCondor,
		Legs: []model.TradeLeg{
			newLeg(model.Sell, model.Call, sellCallStrike, sellCall, lots, units),
			newLeg(model.Buy, model.Call, buyCallStrike, buyCall, lots, units),
			newLeg(model.Sell, model.Put, sellPutStrike, sellPut, lots, units),
			newLeg(model.Buy, model.Put, buyPutStrike, buyPut, lots, units),
		},
		Strikes: fmt.Sprintf("Sell %.0fCE/%.0fPE, Buy %.0fCE/%.0fPE",
			sellCallStrike, sellPutStrike, buyCallStrike, buyPutStrike),
		Expiry:     sellCall.Expiry,
		LotSize:    lotSize,
		Lots:       lots,
		Investment: maxLoss,
		Margin:     maxLoss,
		MaxProfit:  amount(credit, units),
		MaxLoss:    maxLoss,
		Breakevens: []float64{sellPutStrike - credit, sellCallStrike + credit},
		RiskReward: ratio(credit, lossPerUnit),
		Backtest:   &bt,
		Rationale:  fmt.Sprintf("Range bound: profit while price stays between ₹%.0f and ₹%.0f", sellPutStrike, sellCallStrike),
	}
}
