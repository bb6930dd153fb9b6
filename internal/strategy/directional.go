package strategy

import (
	"fmt"

	"OptionSentinel/internal/backtest"
	"OptionSentinel/internal/model"
)

func buildLongCall(c Context) model.StrategyRecommendation {
	strike := c.atm()
	q := c.quote(strike, model.Call)

	bt := backtest.Evaluate(model.LongCall, c.History, backtest.Params{Strike: strike, Cost: q.Premium})
	if bt.Verdict == model.VerdictAvoid {
		return Reject(model.LongCall, avoidReason(bt), &bt)
	}

	lotSize := c.lotSize()
	lots := lotsWithinBudget(q.Premium*float64(lotSize), longCallMaxLots)
	units := lots * lotSize
	invest := amount(q.Premium, units)
	breakeven := strike + q.Premium

	return model.StrategyRecommendation{
		Archetype:          model.LongCall,
		Intended:           model.LongCall,
		Legs:               []model.TradeLeg{newLeg(model.Buy, model.Call, strike, q, lots, units)},
		Strikes:            fmt.Sprintf("%.0f CE (Buy)", strike),
		Expiry:             q.Expiry,
		LotSize:            lotSize,
		Lots:               lots,
		Investment:         invest,
		Margin:             invest,
		MaxProfitUnbounded: true,
		MaxLoss:            invest,
		Breakevens:         []float64{breakeven},
		RiskReward:         longCallRiskReward,
		Backtest:           &bt,
		Rationale:          fmt.Sprintf("Strongly bullish: unlimited upside above ₹%.1f", breakeven),
	}
}

func buildLongPut(c Context) model.StrategyRecommendation {
	strike := c.atm()
	q := c.quote(strike, model.Put)

	profitPerUnit := strike - q.Premium
	if profitPerUnit <= 0 {
		return Reject(model.LongPut, fmt.Sprintf("max profit ₹%.1f per unit is not positive", profitPerUnit), nil)
	}

	bt := backtest.Evaluate(model.LongPut, c.History, backtest.Params{Strike: strike, Cost: q.Premium})
	if bt.Verdict == model.VerdictAvoid {
		return Reject(model.LongPut, avoidReason(bt), &bt)
	}

	lotSize := c.lotSize()
	lots := lotsWithinBudget(q.Premium*float64(lotSize), longPutMaxLots)
	units := lots * lotSize
	invest := amount(q.Premium, units)

	return model.StrategyRecommendation{
		Archetype:  model.LongPut,
		Intended:   model.LongPut,
		Legs:       []model.TradeLeg{newLeg(model.Buy, model.Put, strike, q, lots, units)},
		Strikes:    fmt.Sprintf("%.0f PE (Buy)", strike),
		Expiry:     q.Expiry,
		LotSize:    lotSize,
		Lots:       lots,
		Investment: invest,
		Margin:     invest,
		MaxProfit:  amount(profitPerUnit, units),
		MaxLoss:    invest,
		Breakevens: []float64{profitPerUnit},
		RiskReward: ratio(profitPerUnit, q.Premium),
		Backtest:   &bt,
		Rationale:  fmt.Sprintf("Strongly bearish: profit below ₹%.1f", profitPerUnit),
	}
}

func buildBullCallSpread(c Context) model.StrategyRecommendation {
	buyStrike := c.atm()
	sellStrike := buyStrike + 100
	buy := c.quote(buyStrike, model.Call)
	sell := c.quote(sellStrike, model.Call)

	netCost := buy.Premium - sell.Premium
	if netCost <= 0 {
		return Reject(model.BullCallSpread,
			fmt.Sprintf("net cost ₹%.1f is not positive: a bull call spread must be a debit", netCost), nil)
	}
	profitPerUnit := (sellStrike - buyStrike) - netCost
	if profitPerUnit <= 0 {
		return Reject(model.BullCallSpread, fmt.Sprintf("max profit ₹%.1f per unit is not positive", profitPerUnit), nil)
	}

	bt := backtest.Evaluate(model.BullCallSpread, c.History, backtest.Params{
		Strike:     buyStrike,
		SellStrike: sellStrike,
		Cost:       netCost,
	})

	lotSize := c.lotSize()
	lots := lotsWithinBudget(netCost*float64(lotSize), bullCallSpreadMaxLots)
	units := lots * lotSize

	return model.StrategyRecommendation{
		Archetype: model.BullCallSpread,
		Intended:  model.BullCallSpread,
		Legs: []model.TradeLeg{
			newLeg(model.Buy, model.Call, buyStrike, buy, lots, units),
			newLeg(model.Sell, model.Call, sellStrike, sell, lots, units),
		},
		Strikes:    fmt.Sprintf("%.0f CE (Buy) / %.0f CE (Sell)", buyStrike, sellStrike),
		Expiry:     buy.Expiry,
		LotSize:    lotSize,
		Lots:       lots,
		Investment: amount(netCost, units),
		Margin:     spreadMargin(c.Spot, units),
		MaxProfit:  amount(profitPerUnit, units),
		MaxLoss:    amount(netCost, units),
		Breakevens: []float64{buyStrike + netCost},
		RiskReward: ratio(profitPerUnit, netCost),
		Backtest:   &bt,
		Rationale:  fmt.Sprintf("Moderately bullish: max profit above ₹%.0f", sellStrike),
	}
}

func buildBearPutSpread(c Context) model.StrategyRecommendation {
	buyStrike := c.atm() + 50
	sellStrike := c.atm() - 50
	buy := c.quote(buyStrike, model.Put)
	sell := c.quote(sellStrike, model.Put)

	netCost := buy.Premium - sell.Premium
	if netCost <= 0 {
		return Reject(model.BearPutSpread,
			fmt.Sprintf("net cost ₹%.1f is not positive: a bear put spread must be a debit", netCost), nil)
	}
	profitPerUnit := (buyStrike - sellStrike) - netCost
	if profitPerUnit <= 0 {
		return Reject(model.BearPutSpread, fmt.Sprintf("max profit ₹%.1f per unit is not positive", profitPerUnit), nil)
	}
	rr := ratio(profitPerUnit, netCost)
	if rr < minSpreadRiskReward {
		return Reject(model.BearPutSpread,
			fmt.Sprintf("risk:reward 1:%.2f is below minimum 1:%.1f", rr, minSpreadRiskReward), nil)
	}

	bt := backtest.Evaluate(model.BearPutSpread, c.History, backtest.Params{
		Strike:     buyStrike,
		SellStrike: sellStrike,
		Cost:       netCost,
	})
	if bt.Verdict == model.VerdictAvoid {
		return Reject(model.BearPutSpread, avoidReason(bt), &bt)
	}

	lotSize := c.lotSize()
	lots := lotsWithinBudget(netCost*float64(lotSize), bearPutSpreadMaxLots)
	units := lots * lotSize

	return model.StrategyRecommendation{
		Archetype: model.BearPutSpread,
		Intended:  model.BearPutSpread,
		Legs: []model.TradeLeg{
			newLeg(model.Buy, model.Put, buyStrike, buy, lots, units),
			newLeg(model.Sell, model.Put, sellStrike, sell, lots, units),
		},
		Strikes:    fmt.Sprintf("%.0f PE (Buy) / %.0f PE (Sell)", buyStrike, sellStrike),
		Expiry:     buy.Expiry,
		LotSize:    lotSize,
		Lots:       lots,
		Investment: amount(netCost, units),
		Margin:     spreadMargin(c.Spot, units),
		MaxProfit:  amount(profitPerUnit, units),
		MaxLoss:    amount(netCost, units),
		Breakevens: []float64{buyStrike - netCost},
		RiskReward: rr,
		Backtest:   &bt,
		Rationale:  fmt.Sprintf("Moderately bearish: max profit below ₹%.0f", sellStrike),
	}
}
