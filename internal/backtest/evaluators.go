package backtest

// Profit zones are read straight off each payoff diagram at expiry.

func bullCallSpread(p Params) classifier {
	breakeven := p.Strike + p.Cost
	return func(w window) (bool, bool) {
		return w.exit > w.entry, w.exit >= breakeven
	}
}

func longCall(p Params) classifier {
	breakeven := p.Strike + p.Cost
	return func(w window) (bool, bool) {
		return w.exit > w.entry, w.exit >= breakeven
	}
}

func bearPutSpread(p Params) classifier {
	breakeven := p.Strike - p.Cost
	return func(w window) (bool, bool) {
		return w.exit < w.entry, w.exit <= p.SellStrike || w.exit <= breakeven
	}
}

func longPut(p Params) classifier {
	breakeven := p.Strike - p.Cost
	return func(w window) (bool, bool) {
		return w.exit < w.entry, w.exit <= breakeven
	}
}

func longStraddle(p Params) classifier {
	upper, lower := p.Strike+p.Cost, p.Strike-p.Cost
	return func(w window) (bool, bool) {
		return relativeMove(w) > straddleMoveThreshold, w.exit >= upper || w.exit <= lower
	}
}

func ironCondor(p Params) classifier {
	lower, upper := p.ShortPut-p.Credit, p.ShortCall+p.Credit
	return func(w window) (bool, bool) {
		return relativeMove(w) < condorQuietThreshold, w.exit >= lower && w.exit <= upper
	}
}
