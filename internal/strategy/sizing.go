package strategy

import (
	"github.com/shopspring/decimal"
)

const (
	// Budget caps the premium outlay of a single recommendation, in rupees.
	Budget = 45000.0

	// spreadMarginRate approximates exchange margin on a spread as a share of notional.
	spreadMarginRate = 0.15
)

// lotsWithinBudget returns how many lots costing costPerLot fit the budget,
// at least one and at most maxLots.
func lotsWithinBudget(costPerLot float64, maxLots int) int {
	if costPerLot <= 0 {
		return 1
	}
	lots := decimal.NewFromFloat(Budget).
		Div(decimal.NewFromFloat(costPerLot)).
		Floor().
		IntPart()
	if lots < 1 {
		lots = 1
	}
	if lots > int64(maxLots) {
		lots = int64(maxLots)
	}
	return int(lots)
}

// amount multiplies a per-unit price by a unit count, rounded to paise.
func amount(perUnit float64, units int) float64 {
	return decimal.NewFromFloat(perUnit).
		Mul(decimal.NewFromInt(int64(units))).
		Round(2).
		InexactFloat64()
}

// spreadMargin estimates margin for a spread position on units of the underlying.
func spreadMargin(spot float64, units int) float64 {
	return decimal.NewFromFloat(spot).
		Mul(decimal.NewFromFloat(spreadMarginRate)).
		Mul(decimal.NewFromInt(int64(units))).
		Round(2).
		InexactFloat64()
}

// ratio divides profit by loss, or returns 0 for a non-positive loss.
func ratio(profit, loss float64) float64 {
	if loss <= 0 {
		return 0
	}
	return profit / loss
}
