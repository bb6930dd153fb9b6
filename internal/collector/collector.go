// Package collector fetches quotes, option chains, fundamentals and news for NSE underlyings.
package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"OptionSentinel/internal/model"
)

var (
	// ErrNotFound is returned when a source has no data for a symbol.
	ErrNotFound = errors.New("collector: not found")
	// ErrUnauthorized is returned when a source rejects the session.
	ErrUnauthorized = errors.New("collector: unauthorized")
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"

// Options configures the live sources.
type Options struct {
	YahooBaseURL  string
	NSEBaseURL    string
	GoogleNewsURL string
	YahooNewsURL  string
	NewsEnabled   bool
	NSERatePerSec float64
	Proxy         string
	Timeout       time.Duration
}

// Collector serves every data port of the analyzer from Yahoo, NSE and news sites.
type Collector struct {
	yahoo *Yahoo
	nse   *NSE
	news  *News // nil when disabled
	lots  LotSizes
}

// New wires the live sources behind one shared HTTP transport.
func New(opts Options) *Collector {
	client := newHTTPClient(opts.Proxy, opts.Timeout)
	c := &Collector{
		yahoo: NewYahoo(client, opts.YahooBaseURL),
		nse:   NewNSE(client, opts.NSEBaseURL, opts.NSERatePerSec),
	}
	if opts.NewsEnabled {
		c.news = NewNews(client, opts.GoogleNewsURL, opts.YahooNewsURL)
	}
	return c
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

func (c *Collector) FetchPrice(ctx context.Context, symbol string) (*model.PriceSnapshot, error) {
	return c.yahoo.FetchPrice(ctx, symbol)
}

func (c *Collector) FetchHistoricalCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	return c.yahoo.FetchHistoricalCloses(ctx, symbol, days)
}

func (c *Collector) FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	return c.yahoo.FetchFundamentals(ctx, symbol)
}

func (c *Collector) FetchOptionChain(ctx context.Context, symbol string) (*model.OptionChainSnapshot, error) {
	return c.nse.FetchOptionChain(ctx, symbol)
}

func (c *Collector) FetchSentiment(ctx context.Context, symbol string) (model.SentimentResult, error) {
	if c.news == nil {
		return model.NeutralSentiment(), nil
	}
	return c.news.FetchSentiment(ctx, symbol)
}

func (c *Collector) LotSize(symbol string) int {
	return c.lots.LotSize(symbol)
}
