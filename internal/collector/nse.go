package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"OptionSentinel/internal/model"
)

// NSE fetches option chains from the exchange's public API. The API only
// answers requests carrying cookies from a prior visit to the option-chain page.
type NSE struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter

	sf     singleflight.Group
	mu     sync.RWMutex
	primed bool
}

// NewNSE creates an NSE source paced at ratePerSec requests per second.
func NewNSE(client *http.Client, baseURL string, ratePerSec float64) *NSE {
	if baseURL == "" {
		baseURL = "https://www.nseindia.com"
	}
	if ratePerSec <= 0 {
		ratePerSec = 2
	}
	jar, _ := cookiejar.New(nil)
	c := *client
	c.Jar = jar
	return &NSE{
		client:  &c,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
	}
}

// FetchOptionChain returns the nearest-expiry chain of symbol. A symbol without
// listed options yields a chain with no strikes.
func (n *NSE) FetchOptionChain(ctx context.Context, symbol string) (*model.OptionChainSnapshot, error) {
	if !n.isPrimed() {
		if err := n.refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("nse session init failed, continuing without cookies")
		}
	}

	endpoint := "option-chain-equities"
	if IsIndex(symbol) {
		endpoint = "option-chain-indices"
	}
	u := fmt.Sprintf("%s/api/%s?symbol=%s", n.baseURL, endpoint, url.QueryEscape(strings.ToUpper(symbol)))

	body, err := n.get(ctx, u)
	if errors.Is(err, ErrUnauthorized) {
		log.Info().Str("symbol", symbol).Msg("nse session expired, refreshing cookies")
		n.invalidate()
		if rerr := n.refresh(ctx); rerr != nil {
			return nil, fmt.Errorf("nse refresh session: %w", rerr)
		}
		body, err = n.get(ctx, u)
	}
	if err != nil {
		return nil, fmt.Errorf("nse option chain %s: %w", symbol, err)
	}

	chain, err := parseOptionChain(symbol, body)
	if err != nil {
		return nil, fmt.Errorf("nse option chain %s: %w", symbol, err)
	}
	log.Debug().Str("symbol", symbol).Int("strikes", len(chain.Strikes)).Msg("fetched option chain")
	return chain, nil
}

func (n *NSE) isPrimed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.primed
}

func (n *NSE) invalidate() {
	n.mu.Lock()
	n.primed = false
	n.mu.Unlock()
}

// refresh visits the option-chain page so the jar picks up fresh cookies.
// Concurrent callers share one visit.
func (n *NSE) refresh(ctx context.Context) error {
	_, err, _ := n.sf.Do("session", func() (interface{}, error) {
		if n.isPrimed() {
			return nil, nil
		}
		if _, err := n.get(ctx, n.baseURL+"/option-chain"); err != nil {
			return nil, err
		}
		n.mu.Lock()
		n.primed = true
		n.mu.Unlock()
		return nil, nil
	})
	return err
}

func (n *NSE) get(ctx context.Context, u string) ([]byte, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en,gu;q=0.9,hi;q=0.8")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nse fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nse read body: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("nse: status %d", resp.StatusCode)
	}
}

// parseOptionChain keeps the strikes of the nearest listed expiry.
func parseOptionChain(symbol string, body []byte) (*model.OptionChainSnapshot, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	records := gjson.GetBytes(body, "records")
	data := records.Get("data")
	if !data.Exists() {
		return nil, errors.New("invalid option chain response: records.data missing")
	}

	chain := &model.OptionChainSnapshot{
		Symbol:          strings.ToUpper(symbol),
		UnderlyingValue: records.Get("underlyingValue").Float(),
	}
	for _, e := range records.Get("expiryDates").Array() {
		chain.ExpiryDates = append(chain.ExpiryDates, e.String())
	}
	nearest := ""
	if len(chain.ExpiryDates) > 0 {
		nearest = chain.ExpiryDates[0]
	}

	data.ForEach(func(_, item gjson.Result) bool {
		if nearest != "" && item.Get("expiryDate").String() != nearest {
			return true
		}
		if chain.UnderlyingValue == 0 {
			chain.UnderlyingValue = firstUnderlying(item)
		}
		chain.Strikes = append(chain.Strikes, model.StrikeRecord{
			StrikePrice: item.Get("strikePrice").Float(),
			Call:        optionQuote(item.Get("CE")),
			Put:         optionQuote(item.Get("PE")),
		})
		return true
	})
	return chain, nil
}

func firstUnderlying(item gjson.Result) float64 {
	if v := item.Get("CE.underlyingValue").Float(); v > 0 {
		return v
	}
	return item.Get("PE.underlyingValue").Float()
}

func optionQuote(side gjson.Result) *model.OptionQuote {
	if !side.Exists() {
		return nil
	}
	return &model.OptionQuote{
		LastPrice:         side.Get("lastPrice").Float(),
		Volume:            side.Get("totalTradedVolume").Float(),
		OpenInterest:      side.Get("openInterest").Float(),
		ImpliedVolatility: side.Get("impliedVolatility").Float(),
		ExpiryDate:        side.Get("expiryDate").String(),
	}
}
