package strategy

import (
	"fmt"

	"OptionSentinel/internal/confidence"
	"OptionSentinel/internal/model"
)

// Maximum lots per archetype.
const (
	bullCallSpreadMaxLots = 5
	longCallMaxLots       = 10
	bearPutSpreadMaxLots  = 10
	longPutMaxLots        = 10
	longStraddleMaxLots   = 5
	ironCondorMaxLots     = 2
)

// Nominal risk:reward for payoffs without a bounded maximum profit.
const (
	longCallRiskReward     = 10.0
	longStraddleRiskReward = 4.0
)

// minSpreadRiskReward is the floor below which a debit spread is not worth entering.
const minSpreadRiskReward = 0.3

// Context is the market state a builder works from.
type Context struct {
	Symbol  string
	Spot    float64
	LotSize int
	Chain   *model.OptionChainSnapshot
	// History is the closing-price series replayed by the backtest, oldest first.
	History []float64
}

func (c Context) atm() float64 {
	return confidence.ATMStrike(c.Spot)
}

func (c Context) lotSize() int {
	if c.LotSize <= 0 {
		return 1
	}
	return c.LotSize
}

func (c Context) quote(strike float64, typ model.OptionType) legQuote {
	return quoteFor(c.Chain, strike, typ, c.Spot)
}

// Build turns the selected archetype into a recommendation. Position-taking
// archetypes run their backtest and may come back as StrategyRejected.
func Build(a model.Archetype, c Context) model.StrategyRecommendation {
	switch a {
	case model.NoFnOTrading:
		return terminal(a, fmt.Sprintf("Stock price ₹%.1f: no active options available, cash market only", c.Spot))
	case model.Watch:
		return terminal(a, "Unclear conditions: monitor for a better setup")
	case model.BullCallSpread:
		return buildBullCallSpread(c)
	case model.LongCall:
		return buildLongCall(c)
	case model.BearPutSpread:
		return buildBearPutSpread(c)
	case model.LongPut:
		return buildLongPut(c)
	case model.LongStraddle:
		return buildLongStraddle(c)
	case model.IronCondor:
		return buildIronCondor(c)
	default:
		return Reject(a, fmt.Sprintf("no builder for %s", a), nil)
	}
}

// Reject produces the financial-zero StrategyRejected variant for intended.
func Reject(intended model.Archetype, reason string, bt *model.BacktestResult) model.StrategyRecommendation {
	return model.StrategyRecommendation{
		Archetype:       model.StrategyRejected,
		Intended:        intended,
		Expiry:          "N/A",
		Backtest:        bt,
		RejectionReason: reason,
		Rationale:       fmt.Sprintf("%s rejected", intended),
	}
}

func terminal(a model.Archetype, rationale string) model.StrategyRecommendation {
	return model.StrategyRecommendation{
		Archetype: a,
		Intended:  a,
		Expiry:    "N/A",
		Rationale: rationale,
	}
}

func avoidReason(bt model.BacktestResult) string {
	return fmt.Sprintf("poor historical performance (score %.1f/100): %s", bt.Score, bt.Reason)
}

func newLeg(action model.Action, typ model.OptionType, strike float64, q legQuote, lots, units int) model.TradeLeg {
	return model.TradeLeg{
		Action:  action,
		Type:    typ,
		Strike:  strike,
		Premium: q.Premium,
		Source:  q.Source,
		Lots:    lots,
		Units:   units,
		Expiry:  q.Expiry,
		Volume:  q.Volume,
		OpenInt: q.OpenInt,
	}
}
