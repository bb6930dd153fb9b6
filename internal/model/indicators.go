package model

// Trend is the short-horizon price direction.
type Trend string

const (
	TrendUp       Trend = "UPTREND"
	TrendDown     Trend = "DOWNTREND"
	TrendSideways Trend = "SIDEWAYS"
)

// TechnicalSnapshot holds the indicators derived from closing prices.
type TechnicalSnapshot struct {
	RSI   float64
	SMA10 float64
	SMA20 float64
	Trend Trend
}
