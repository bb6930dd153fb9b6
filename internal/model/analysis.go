package model

import "time"

// Tier buckets analysis results by final confidence.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// TierFor maps a final confidence to its tier.
func TierFor(finalConfidence int) Tier {
	switch {
	case finalConfidence >= 50:
		return TierHigh
	case finalConfidence >= 30:
		return TierMedium
	default:
		return TierLow
	}
}

// AnalysisResult is the outcome of analysing one instrument.
type AnalysisResult struct {
	Symbol         string
	Price          PriceSnapshot
	Technical      TechnicalSnapshot
	Sentiment      SentimentResult
	Fundamentals   *Fundamentals
	BaseConfidence int
	Recommendation StrategyRecommendation
	Tier           Tier
	AnalyzedAt     time.Time
}

// FinalConfidence is a shortcut for the recommendation's final confidence.
func (r *AnalysisResult) FinalConfidence() int {
	return r.Recommendation.FinalConfidence
}
