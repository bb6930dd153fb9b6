package collector

import "strings"

// DefaultLotSize applies to symbols missing from the table.
const DefaultLotSize = 1000

// lotSizes holds NSE F&O contract sizes. Index entries are per point.
var lotSizes = map[string]int{
	"RELIANCE":   250,
	"TCS":        150,
	"INFY":       300,
	"HDFCBANK":   550,
	"ICICIBANK":  1375,
	"HINDUNILVR": 300,
	"ITC":        1600,
	"SBIN":       1500,
	"BHARTIARTL": 1800,
	"ASIANPAINT": 150,
	"MARUTI":     100,
	"AXISBANK":   1200,
	"LT":         225,
	"TITAN":      294,
	"ULTRACEMCO": 100,
	"WIPRO":      1200,
	"ADANIPORTS": 1200,
	"ADANIENT":   400,
	"APOLLOHOSP": 125,
	"BAJAJ-AUTO": 250,
	"BAJFINANCE": 125,
	"BAJAJFINSV": 500,
	"BPCL":       2400,
	"BRITANNIA":  200,
	"CIPLA":      800,
	"COALINDIA":  4000,
	"DIVISLAB":   300,
	"DRREDDY":    125,
	"EICHERMOT":  250,
	"GRASIM":     600,
	"HCLTECH":    700,
	"HEROMOTOCO": 600,
	"HINDALCO":   2000,
	"INDUSINDBK": 900,
	"KOTAKBANK":  400,
	"JSWSTEEL":   1500,
	"M&M":        600,
	"NTPC":       4000,
	"NESTLEIND":  50,
	"ONGC":       4000,
	"POWERGRID":  2700,
	"SUNPHARMA":  1000,
	"TATACONSUM": 1200,
	"TATAMOTORS": 3000,
	"TATASTEEL":  800,
	"TECHM":      600,
	"UPL":        1500,
	"NIFTY":      25,
	"BANKNIFTY":  15,
	"FINNIFTY":   25,
	"MIDCPNIFTY": 50,
}

var indexSymbols = map[string]bool{
	"NIFTY":      true,
	"BANKNIFTY":  true,
	"FINNIFTY":   true,
	"MIDCPNIFTY": true,
	"NIFTYNXT50": true,
}

// LotSizes resolves contract sizes from the static NSE table.
type LotSizes struct{}

// LotSize returns the contract size for symbol, case-insensitively.
func (LotSizes) LotSize(symbol string) int {
	if n, ok := lotSizes[strings.ToUpper(symbol)]; ok {
		return n
	}
	return DefaultLotSize
}

// IsIndex reports whether symbol is an index underlying.
func IsIndex(symbol string) bool {
	return indexSymbols[strings.ToUpper(symbol)]
}
