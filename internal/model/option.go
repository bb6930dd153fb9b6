package model

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "CE"
	Put  OptionType = "PE"
)

// OptionQuote is one side of a strike in the option chain.
type OptionQuote struct {
	LastPrice         float64
	Volume            float64
	OpenInterest      float64
	ImpliedVolatility float64
	ExpiryDate        string
}

// StrikeRecord is a strike price with its optional call and put quotes.
type StrikeRecord struct {
	StrikePrice float64
	Call        *OptionQuote
	Put         *OptionQuote
}

// Quote returns the side of the strike matching typ, or nil.
func (s *StrikeRecord) Quote(typ OptionType) *OptionQuote {
	if typ == Put {
		return s.Put
	}
	return s.Call
}

// OptionChainSnapshot is the option chain of an underlying for the nearest expiry.
type OptionChainSnapshot struct {
	Symbol          string
	UnderlyingValue float64
	ExpiryDates     []string
	Strikes         []StrikeRecord
}

// Strike returns the record for price, or nil when the chain has none.
func (c *OptionChainSnapshot) Strike(price float64) *StrikeRecord {
	if c == nil {
		return nil
	}
	for i := range c.Strikes {
		if c.Strikes[i].StrikePrice == price {
			return &c.Strikes[i]
		}
	}
	return nil
}

// Empty reports whether the chain carries no strikes.
func (c *OptionChainSnapshot) Empty() bool {
	return c == nil || len(c.Strikes) == 0
}

// NearestExpiry returns the first listed expiry or "N/A".
func (c *OptionChainSnapshot) NearestExpiry() string {
	if c == nil || len(c.ExpiryDates) == 0 {
		return "N/A"
	}
	return c.ExpiryDates[0]
}
