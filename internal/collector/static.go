package collector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"OptionSentinel/internal/calculator"
	"OptionSentinel/internal/confidence"
	"OptionSentinel/internal/model"
)

// Static serves fixed in-memory data for development and testing.
// A symbol without a chain entry is treated as having no listed options.
type Static struct {
	Prices       map[string]*model.PriceSnapshot
	Chains       map[string]*model.OptionChainSnapshot
	Sentiments   map[string]model.SentimentResult
	Fundamentals map[string]*model.Fundamentals
	History      map[string][]float64
	Lots         map[string]int
}

func (s *Static) FetchPrice(_ context.Context, symbol string) (*model.PriceSnapshot, error) {
	p, ok := s.Prices[symbol]
	if !ok {
		return nil, fmt.Errorf("static price %s: %w", symbol, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *Static) FetchOptionChain(_ context.Context, symbol string) (*model.OptionChainSnapshot, error) {
	return s.Chains[symbol], nil
}

func (s *Static) FetchSentiment(_ context.Context, symbol string) (model.SentimentResult, error) {
	if r, ok := s.Sentiments[symbol]; ok {
		return r, nil
	}
	return model.NeutralSentiment(), nil
}

func (s *Static) FetchFundamentals(_ context.Context, symbol string) (*model.Fundamentals, error) {
	f, ok := s.Fundamentals[symbol]
	if !ok {
		return nil, fmt.Errorf("static fundamentals %s: %w", symbol, ErrNotFound)
	}
	return f, nil
}

func (s *Static) FetchHistoricalCloses(_ context.Context, symbol string, days int) ([]float64, error) {
	closes := s.History[symbol]
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	return append([]float64(nil), closes...), nil
}

func (s *Static) LotSize(symbol string) int {
	if n, ok := s.Lots[symbol]; ok {
		return n
	}
	return LotSizes{}.LotSize(symbol)
}

// Symbols lists every symbol with a price, sorted.
func (s *Static) Symbols() []string {
	out := make([]string, 0, len(s.Prices))
	for sym := range s.Prices {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// demoProfile shapes one synthetic instrument.
type demoProfile struct {
	symbol string
	spot   float64
	drift  float64 // per-session relative move
	volume float64 // option volume per side near the money
}

// NewDemo builds a Static source with a handful of synthetic instruments that
// exercise the bullish, bearish, range-bound and unlisted paths.
func NewDemo() *Static {
	s := &Static{
		Prices:       map[string]*model.PriceSnapshot{},
		Chains:       map[string]*model.OptionChainSnapshot{},
		Sentiments:   map[string]model.SentimentResult{},
		Fundamentals: map[string]*model.Fundamentals{},
		History:      map[string][]float64{},
		Lots:         map[string]int{},
	}
	profiles := []demoProfile{
		{symbol: "RELIANCE", spot: 2850, drift: 0.004, volume: 4000},
		{symbol: "SBIN", spot: 810, drift: -0.004, volume: 3000},
		{symbol: "NIFTY", spot: 24850, drift: 0, volume: 15000},
		{symbol: "TCS", spot: 4100, drift: 0.0005, volume: 600},
	}
	for _, p := range profiles {
		bars := generateBars(p.spot, p.drift, 60)
		closes := calculator.ExtractCloses(bars)
		last := bars[len(bars)-1]
		high, low, _ := calculator.CalculateRange(bars)
		spot := last.Close

		s.Prices[p.symbol] = &model.PriceSnapshot{
			Symbol:           p.symbol,
			CurrentPrice:     spot,
			Open:             last.Open,
			High:             last.High,
			Low:              last.Low,
			Volume:           last.Volume,
			High52w:          high,
			Low52w:           low,
			ChangePercent:    calculator.ChangePercent(spot, last.Open),
			HistoricalCloses: closes[len(closes)-snapshotCloses:],
			FetchedAt:        time.Now(),
		}
		s.History[p.symbol] = closes
		s.Chains[p.symbol] = generateChain(p.symbol, spot, p.volume)
		pe, pb, roe := 18.0, 2.4, 16.5
		s.Fundamentals[p.symbol] = &model.Fundamentals{PE: &pe, PB: &pb, ROE: &roe}
	}
	// Listed on the cash market only.
	s.Prices["IRFC"] = &model.PriceSnapshot{Symbol: "IRFC", CurrentPrice: 142, Open: 141, ChangePercent: 0.7, FetchedAt: time.Now()}
	return s
}

func generateBars(spot, drift float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	// Walk backwards from spot so the last close is spot.
	for i := 0; i < count; i++ {
		p := spot * math.Pow(1+drift, float64(i-count+1))
		open := p / (1 + drift*2)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   open,
			High:   math.Max(open, p) * 1.005,
			Low:    math.Min(open, p) * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

func generateChain(symbol string, spot, volume float64) *model.OptionChainSnapshot {
	atm := confidence.ATMStrike(spot)
	chain := &model.OptionChainSnapshot{
		Symbol:          symbol,
		UnderlyingValue: spot,
		ExpiryDates:     []string{"27-Nov-2025", "24-Dec-2025"},
	}
	for k := -6; k <= 6; k++ {
		strike := atm + 50*float64(k)
		callIntrinsic := math.Max(spot-strike, 0)
		putIntrinsic := math.Max(strike-spot, 0)
		timeValue := math.Max(spot*0.012-math.Abs(strike-spot)*0.1, 2)
		chain.Strikes = append(chain.Strikes, model.StrikeRecord{
			StrikePrice: strike,
			Call: &model.OptionQuote{
				LastPrice:    math.Round((callIntrinsic+timeValue)*20) / 20,
				Volume:       volume,
				OpenInterest: volume * 4,
				ExpiryDate:   chain.ExpiryDates[0],
			},
			Put: &model.OptionQuote{
				LastPrice:    math.Round((putIntrinsic+timeValue)*20) / 20,
				Volume:       volume,
				OpenInterest: volume * 4,
				ExpiryDate:   chain.ExpiryDates[0],
			},
		})
	}
	return chain
}
