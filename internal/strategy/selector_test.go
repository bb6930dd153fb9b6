package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"OptionSentinel/internal/model"
)

func TestSelect(t *testing.T) {
	base := Signal{HasChain: true, Trend: model.TrendSideways, RSI: 50, Volatility: VolatilityLow}
	with := func(mod func(s *Signal)) Signal {
		s := base
		mod(&s)
		return s
	}

	tests := []struct {
		name   string
		signal Signal
		want   model.Archetype
	}{
		{"no chain", with(func(s *Signal) { s.HasChain = false; s.ChangePercent = 5; s.Confidence = 90 }), model.NoFnOTrading},
		{"strong bull high confidence", with(func(s *Signal) { s.Trend = model.TrendUp; s.ChangePercent = 3; s.Confidence = 75 }), model.LongCall},
		{"strong bull low confidence", with(func(s *Signal) { s.Trend = model.TrendUp; s.ChangePercent = 0.6; s.Confidence = 69 }), model.BullCallSpread},
		{"big move without trend", with(func(s *Signal) { s.ChangePercent = 2.1; s.Confidence = 80 }), model.LongCall},
		{"strong bear high confidence", with(func(s *Signal) { s.Trend = model.TrendDown; s.ChangePercent = -0.6; s.Confidence = 70 }), model.LongPut},
		{"strong bear low confidence", with(func(s *Signal) { s.ChangePercent = -2.5; s.Confidence = 40 }), model.BearPutSpread},
		{"high volatility", with(func(s *Signal) { s.Volatility = VolatilityHigh; s.RSI = 80 }), model.LongStraddle},
		{"overbought", with(func(s *Signal) { s.RSI = 66 }), model.BearPutSpread},
		{"oversold", with(func(s *Signal) { s.RSI = 34 }), model.BullCallSpread},
		{"range bound", with(func(s *Signal) { s.Confidence = 60; s.ChangePercent = -1.4 }), model.IronCondor},
		{"moderate up", with(func(s *Signal) { s.Trend = model.TrendUp; s.Confidence = 55; s.ChangePercent = 0 }), model.BullCallSpread},
		{"moderate down", with(func(s *Signal) { s.Confidence = 55; s.ChangePercent = -1.6 }), model.BearPutSpread},
		{"watch", with(func(s *Signal) { s.Confidence = 49 }), model.Watch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.signal))
		})
	}
}

func TestClassifyVolatility(t *testing.T) {
	chain := func(volume float64, strikes int) *model.OptionChainSnapshot {
		c := &model.OptionChainSnapshot{UnderlyingValue: 1000}
		for i := 0; i < strikes; i++ {
			c.Strikes = append(c.Strikes, model.StrikeRecord{
				StrikePrice: 1000 + 50*float64(i),
				Call:        &model.OptionQuote{Volume: volume / 2},
				Put:         &model.OptionQuote{Volume: volume / 2},
			})
		}
		return c
	}

	assert.Equal(t, VolatilityLow, ClassifyVolatility(nil))
	assert.Equal(t, VolatilityHigh, ClassifyVolatility(chain(12000, 5)))
	assert.Equal(t, VolatilityMedium, ClassifyVolatility(chain(5000, 5)))
	assert.Equal(t, VolatilityLow, ClassifyVolatility(chain(3000, 5)))
	// one busy strike is not enough
	assert.Equal(t, VolatilityLow, ClassifyVolatility(chain(12000, 1)))
}
