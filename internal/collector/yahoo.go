package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"OptionSentinel/internal/calculator"
	"OptionSentinel/internal/model"
)

const (
	// priceLookbackDays is the calendar window requested for a price snapshot.
	priceLookbackDays = 90
	// snapshotCloses is how many recent closes a price snapshot keeps.
	snapshotCloses = 30
)

// yahooIndexTickers maps NSE index names to Yahoo tickers.
var yahooIndexTickers = map[string]string{
	"NIFTY":      "^NSEI",
	"BANKNIFTY":  "^NSEBANK",
	"FINNIFTY":   "NIFTY_FIN_SERVICE.NS",
	"MIDCPNIFTY": "NIFTY_MID_SELECT.NS",
}

// Yahoo reads daily bars and key statistics from Yahoo Finance.
type Yahoo struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewYahoo creates a Yahoo source. baseURL defaults to the public query host.
func NewYahoo(client *http.Client, baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Yahoo{client: client, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

func yahooTicker(symbol string) string {
	if t, ok := yahooIndexTickers[strings.ToUpper(symbol)]; ok {
		return t
	}
	if strings.HasPrefix(symbol, "^") || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".NS"
}

// FetchPrice returns the latest quote with up to 30 recent closes.
func (y *Yahoo) FetchPrice(ctx context.Context, symbol string) (*model.PriceSnapshot, error) {
	bars, marketPrice, err := y.chart(ctx, symbol, priceLookbackDays)
	if err != nil {
		return nil, err
	}

	last := bars[len(bars)-1]
	current := last.Close
	if marketPrice > 0 {
		current = marketPrice
	}
	high, low, _ := calculator.CalculateRange(bars)

	closes := calculator.ExtractCloses(bars)
	if len(closes) > snapshotCloses {
		closes = closes[len(closes)-snapshotCloses:]
	}

	return &model.PriceSnapshot{
		Symbol:           symbol,
		CurrentPrice:     current,
		Open:             last.Open,
		High:             last.High,
		Low:              last.Low,
		Volume:           last.Volume,
		High52w:          high,
		Low52w:           low,
		ChangePercent:    calculator.ChangePercent(current, last.Open),
		HistoricalCloses: closes,
		FetchedAt:        y.now(),
	}, nil
}

// FetchHistoricalCloses returns the closes of the last `days` sessions, oldest first.
func (y *Yahoo) FetchHistoricalCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	// Weekends and holidays: ask for twice the calendar span.
	bars, _, err := y.chart(ctx, symbol, days*2)
	if err != nil {
		return nil, err
	}
	closes := calculator.ExtractCloses(bars)
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	return closes, nil
}

// FetchFundamentals reads valuation ratios from the quote summary. Missing
// ratios stay nil.
func (y *Yahoo) FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=financialData,defaultKeyStatistics",
		y.baseURL, url.PathEscape(yahooTicker(symbol)))
	body, err := y.get(ctx, u)
	if err != nil {
		return nil, err
	}

	res := gjson.GetBytes(body, "quoteSummary.result.0")
	if !res.Exists() {
		return nil, fmt.Errorf("yahoo fundamentals %s: %w", symbol, ErrNotFound)
	}

	f := &model.Fundamentals{
		PE:           rawValue(res, "defaultKeyStatistics.trailingPE"),
		PB:           rawValue(res, "defaultKeyStatistics.priceToBook"),
		DebtToEquity: rawValue(res, "financialData.debtToEquity"),
	}
	if roe := rawValue(res, "financialData.returnOnEquity"); roe != nil {
		pct := *roe * 100
		f.ROE = &pct
	}
	return f, nil
}

func rawValue(res gjson.Result, path string) *float64 {
	v := res.Get(path + ".raw")
	if !v.Exists() || v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

// chart fetches daily bars over the last `days` calendar days plus the live
// market price when Yahoo reports one.
func (y *Yahoo) chart(ctx context.Context, symbol string, days int) ([]model.OHLCV, float64, error) {
	end := y.now()
	start := end.AddDate(0, 0, -days)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&includePrePost=false",
		y.baseURL, url.PathEscape(yahooTicker(symbol)), start.Unix(), end.Unix())

	body, err := y.get(ctx, u)
	if err != nil {
		return nil, 0, err
	}
	bars, marketPrice, err := parseChart(body)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	return bars, marketPrice, nil
}

func parseChart(body []byte) ([]model.OHLCV, float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, fmt.Errorf("invalid json")
	}
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() {
		return nil, 0, fmt.Errorf("api error: %s", desc.String())
	}
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, 0, ErrNotFound
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]model.OHLCV, 0, len(closes))
	for i, c := range closes {
		if c.Type != gjson.Number {
			continue // skip null bars (holidays etc.)
		}
		price := c.Float()
		bar := model.OHLCV{
			Open:   valueAt(opens, i, price),
			High:   valueAt(highs, i, price),
			Low:    valueAt(lows, i, price),
			Close:  price,
			Volume: valueAt(volumes, i, 0),
		}
		if i < len(timestamps) {
			bar.Time = time.Unix(timestamps[i].Int(), 0)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, 0, ErrNotFound
	}
	return bars, result.Get("meta.regularMarketPrice").Float(), nil
}

func valueAt(values []gjson.Result, i int, fallback float64) float64 {
	if i >= len(values) || values[i].Type != gjson.Number {
		return fallback
	}
	return values[i].Float()
}

func (y *Yahoo) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}
	return body, nil
}
