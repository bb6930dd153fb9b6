package model

// Archetype is the closed set of outcomes the strategy selector can produce.
type Archetype int

const (
	NoFnOTrading Archetype = iota
	Watch
	BullCallSpread
	LongCall
	BearPutSpread
	LongPut
	LongStraddle
	IronCondor
	StrategyRejected
)

var archetypeNames = [...]string{
	NoFnOTrading:     "No F&O Trading",
	Watch:            "Watch",
	BullCallSpread:   "Bull Call Spread",
	LongCall:         "Long Call",
	BearPutSpread:    "Bear Put Spread",
	LongPut:          "Long Put",
	LongStraddle:     "Long Straddle",
	IronCondor:       "Iron Condor",
	StrategyRejected: "Strategy Rejected",
}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return "Unknown"
	}
	return archetypeNames[a]
}

// TakesPosition reports whether the archetype is built into trade legs.
func (a Archetype) TakesPosition() bool {
	return a >= BullCallSpread && a <= IronCondor
}

// PositionArchetypes lists every archetype that has a builder and an evaluator.
func PositionArchetypes() []Archetype {
	return []Archetype{BullCallSpread, LongCall, BearPutSpread, LongPut, LongStraddle, IronCondor}
}

// Action is the side of a trade leg.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// PremiumSource tells whether a leg price came from the market or the fallback estimator.
type PremiumSource string

const (
	PremiumMarket   PremiumSource = "MARKET"
	PremiumFallback PremiumSource = "FALLBACK"
)

// TradeLeg is a single option position of a strategy.
type TradeLeg struct {
	Action  Action
	Type    OptionType
	Strike  float64
	Premium float64
	Source  PremiumSource
	Lots    int
	Units   int
	Expiry  string
	Volume  float64
	OpenInt float64
}

// Verdict classifies a backtest score.
type Verdict string

const (
	VerdictStrongBuy Verdict = "STRONG_BUY"
	VerdictCautious  Verdict = "CAUTIOUS"
	VerdictAvoid     Verdict = "AVOID"
	VerdictNoData    Verdict = "NO_DATA"
	VerdictUnknown   Verdict = "UNKNOWN"
)

// BacktestResult is the historical success estimate of a strategy.
type BacktestResult struct {
	Score     float64 // 0 ~ 100
	Verdict   Verdict
	Reason    string
	Scenarios int

	// MovePct is directional accuracy, or the share of volatile (straddle)
	// or quiet (iron condor) windows.
	MovePct   float64
	ProfitPct float64
}

// ConfidenceBreakdown shows how the final confidence was assembled.
type ConfidenceBreakdown struct {
	DataQuality     float64
	HistoricalScore float64
	RiskRewardScore float64
	BaseConfidence  int
	BacktestScore   float64
	HasBacktest     bool
	RiskRewardRatio float64
}

// StrategyRecommendation is a concrete trade proposal, or a terminal no-trade outcome.
type StrategyRecommendation struct {
	Archetype          Archetype
	Intended           Archetype // archetype chosen by the selector, kept when rejected
	Legs               []TradeLeg
	Strikes            string
	Expiry             string
	LotSize            int
	Lots               int
	Investment         float64
	Margin             float64
	MaxProfit          float64
	MaxProfitUnbounded bool
	MaxLoss            float64
	Breakevens         []float64
	RiskReward         float64
	Backtest           *BacktestResult
	RejectionReason    string
	Rationale          string
	FinalConfidence    int
	Breakdown          *ConfidenceBreakdown
}

// Rejected reports whether the recommendation is a rejection.
func (r *StrategyRecommendation) Rejected() bool {
	return r.Archetype == StrategyRejected
}
