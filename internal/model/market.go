package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSnapshot is the latest quote of an underlying plus its recent closes.
type PriceSnapshot struct {
	Symbol           string
	CurrentPrice     float64
	Open             float64
	High             float64
	Low              float64
	Volume           float64
	High52w          float64
	Low52w           float64
	ChangePercent    float64
	HistoricalCloses []float64 // oldest first, at most 30
	FetchedAt        time.Time
}

// Fundamentals holds optional valuation ratios. Nil fields are unknown.
type Fundamentals struct {
	PE           *float64
	PB           *float64
	ROE          *float64 // percent
	DebtToEquity *float64
}

// Momentum is the news sentiment direction.
type Momentum string

const (
	MomentumPositive Momentum = "POSITIVE"
	MomentumNegative Momentum = "NEGATIVE"
	MomentumNeutral  Momentum = "NEUTRAL"
)

// SentimentResult summarises recent headlines for a symbol.
type SentimentResult struct {
	Score         float64 // -1.0 ~ 1.0
	Momentum      Momentum
	HeadlineCount int
}

// NeutralSentiment is used when no headlines could be collected.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Momentum: MomentumNeutral}
}
