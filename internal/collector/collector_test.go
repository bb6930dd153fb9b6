package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OptionSentinel/internal/model"
)

const chartJSON = `{"chart":{"result":[{
  "meta":{"regularMarketPrice":1012.5},
  "timestamp":[1700000000,1700086400,1700172800,1700259200],
  "indicators":{"quote":[{
    "open":[990,1000,null,1005],
    "high":[1000,1010,null,1015],
    "low":[985,995,null,1000],
    "close":[995,1004,null,1010],
    "volume":[1000,2000,null,3000]
  }]}
}],"error":null}}`

func TestParseChart(t *testing.T) {
	bars, price, err := parseChart([]byte(chartJSON))
	require.NoError(t, err)
	require.Len(t, bars, 3, "null bars are skipped")
	assert.Equal(t, 1012.5, price)
	assert.Equal(t, 1010.0, bars[2].Close)
	assert.Equal(t, 3000.0, bars[2].Volume)

	_, _, err = parseChart([]byte(`{"chart":{"result":null,"error":{"description":"No data found"}}}`))
	assert.ErrorContains(t, err, "No data found")

	_, _, err = parseChart([]byte(`not json`))
	assert.Error(t, err)
}

func TestYahooFetchPrice(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartJSON)
	}))
	defer srv.Close()

	y := NewYahoo(srv.Client(), srv.URL)
	p, err := y.FetchPrice(context.Background(), "RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", gotPath)
	assert.Equal(t, 1012.5, p.CurrentPrice)
	assert.Equal(t, 1005.0, p.Open)
	assert.Equal(t, 1015.0, p.High52w)
	assert.Equal(t, 985.0, p.Low52w)
	assert.Equal(t, []float64{995, 1004, 1010}, p.HistoricalCloses)
	assert.InDelta(t, 0.746, p.ChangePercent, 0.001)
}

func TestYahooNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewYahoo(srv.Client(), srv.URL).FetchHistoricalCloses(context.Background(), "NOSUCH", 30)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYahooFetchFundamentals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{
		  "defaultKeyStatistics":{"trailingPE":{"raw":18.2},"priceToBook":{}},
		  "financialData":{"returnOnEquity":{"raw":0.165},"debtToEquity":{"raw":42.1}}
		}]}}`)
	}))
	defer srv.Close()

	f, err := NewYahoo(srv.Client(), srv.URL).FetchFundamentals(context.Background(), "TCS")
	require.NoError(t, err)
	require.NotNil(t, f.PE)
	assert.Equal(t, 18.2, *f.PE)
	assert.Nil(t, f.PB, "missing raw value stays unknown")
	require.NotNil(t, f.ROE)
	assert.InDelta(t, 16.5, *f.ROE, 1e-9)
}

func TestYahooTicker(t *testing.T) {
	assert.Equal(t, "^NSEI", yahooTicker("NIFTY"))
	assert.Equal(t, "^NSEBANK", yahooTicker("banknifty"))
	assert.Equal(t, "SBIN.NS", yahooTicker("SBIN"))
	assert.Equal(t, "^GSPC", yahooTicker("^GSPC"))
}

const chainJSON = `{"records":{
  "expiryDates":["27-Nov-2025","24-Dec-2025"],
  "underlyingValue":0,
  "data":[
    {"strikePrice":1000,"expiryDate":"27-Nov-2025",
     "CE":{"lastPrice":30,"totalTradedVolume":5000,"openInterest":100,"impliedVolatility":18,"underlyingValue":1003,"expiryDate":"27-Nov-2025"},
     "PE":{"lastPrice":27,"totalTradedVolume":4000,"openInterest":90,"expiryDate":"27-Nov-2025"}},
    {"strikePrice":1050,"expiryDate":"27-Nov-2025",
     "CE":{"lastPrice":10,"totalTradedVolume":3000,"openInterest":50,"expiryDate":"27-Nov-2025"}},
    {"strikePrice":1000,"expiryDate":"24-Dec-2025",
     "CE":{"lastPrice":45,"totalTradedVolume":100,"openInterest":10,"expiryDate":"24-Dec-2025"}}
  ]}}`

func TestParseOptionChain(t *testing.T) {
	chain, err := parseOptionChain("reliance", []byte(chainJSON))
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", chain.Symbol)
	assert.Equal(t, 1003.0, chain.UnderlyingValue, "falls back to the per-leg underlying")
	require.Len(t, chain.Strikes, 2, "only the nearest expiry is kept")
	assert.Equal(t, "27-Nov-2025", chain.NearestExpiry())

	atm := chain.Strike(1000)
	require.NotNil(t, atm)
	assert.Equal(t, 30.0, atm.Call.LastPrice)
	assert.Equal(t, 4000.0, atm.Put.Volume)
	assert.Nil(t, chain.Strike(1050).Put)

	_, err = parseOptionChain("X", []byte(`{"records":{}}`))
	assert.Error(t, err)
}

func TestNSERefreshesSessionOnUnauthorized(t *testing.T) {
	var primes, calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/option-chain":
			n := primes.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "nsit", Value: fmt.Sprint(n), Path: "/"})
		case "/api/option-chain-equities":
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if c, err := r.Cookie("nsit"); err != nil || c.Value != "2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, chainJSON)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	n := NewNSE(srv.Client(), srv.URL, 1000)
	chain, err := n.FetchOptionChain(context.Background(), "RELIANCE")
	require.NoError(t, err)
	assert.Len(t, chain.Strikes, 2)
	assert.EqualValues(t, 2, primes.Load())
	assert.EqualValues(t, 2, calls.Load())
}

func TestNSEIndexEndpoint(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/option-chain" {
			path = r.URL.Path
			fmt.Fprint(w, chainJSON)
		}
	}))
	defer srv.Close()

	_, err := NewNSE(srv.Client(), srv.URL, 1000).FetchOptionChain(context.Background(), "nifty")
	require.NoError(t, err)
	assert.Equal(t, "/api/option-chain-indices", path)
}

func TestScoreHeadlines(t *testing.T) {
	tests := []struct {
		name      string
		headlines []string
		want      float64
	}{
		{"empty", nil, 0},
		{"no keywords", []string{"Company holds annual meeting"}, 0},
		{"positive", []string{"Shares surge on strong results"}, 1},
		{"negative", []string{"Stock falls amid concern"}, -1},
		{"mixed", []string{"Shares surge on strong results", "Stock falls amid concern"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreHeadlines(tt.headlines))
		})
	}
}

func TestCombineSentiment(t *testing.T) {
	r := CombineSentiment([]string{"Shares surge on strong results"}, nil)
	assert.Equal(t, 0.5, r.Score)
	assert.Equal(t, model.MomentumPositive, r.Momentum)
	assert.Equal(t, 1, r.HeadlineCount)

	r = CombineSentiment(nil, []string{"Stock falls amid concern"})
	assert.Equal(t, model.MomentumNegative, r.Momentum)

	r = CombineSentiment(nil, nil)
	assert.Equal(t, model.NeutralSentiment(), r)
}

func TestNewsFetchSentiment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nws", r.URL.Query().Get("tbm"))
		fmt.Fprint(w, `<html><body>
		  <div class="SoaBEf"><div class="MBeuO">Reliance shares surge to record high</div></div>
		</body></html>`)
	})
	mux.HandleFunc("/quote/RELIANCE.NS/news", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
		  <h3 class="Mb(5px)">Analysts upgrade Reliance after strong quarter</h3>
		  <h3>Short</h3>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	n := NewNews(srv.Client(), srv.URL+"/search", srv.URL)
	n.pause = 0
	r, err := n.FetchSentiment(context.Background(), "RELIANCE")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Score)
	assert.Equal(t, model.MomentumPositive, r.Momentum)
	assert.Equal(t, 2, r.HeadlineCount)
}

func TestNewsFetchSentimentCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := NewNews(srv.Client(), srv.URL, srv.URL)
	n.pause = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r, err := n.FetchSentiment(ctx, "SBIN")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, model.NeutralSentiment(), r)
}

func TestLotSizes(t *testing.T) {
	var l LotSizes
	assert.Equal(t, 250, l.LotSize("RELIANCE"))
	assert.Equal(t, 250, l.LotSize("reliance"))
	assert.Equal(t, 25, l.LotSize("NIFTY"))
	assert.Equal(t, DefaultLotSize, l.LotSize("UNLISTED"))
	assert.True(t, IsIndex("banknifty"))
	assert.False(t, IsIndex("SBIN"))
}

func TestUniverse(t *testing.T) {
	u := Universe()
	seen := map[string]bool{}
	for _, s := range u {
		assert.False(t, seen[s], "duplicate %s", s)
		seen[s] = true
	}
	assert.True(t, seen["RELIANCE"])
	assert.True(t, seen["NIFTY"])
	assert.Equal(t, "MIDCPNIFTY", u[len(u)-1])
}

func TestStatic(t *testing.T) {
	s := NewDemo()
	ctx := context.Background()

	p, err := s.FetchPrice(ctx, "RELIANCE")
	require.NoError(t, err)
	assert.InDelta(t, 2850, p.CurrentPrice, 1e-6)
	assert.Len(t, p.HistoricalCloses, snapshotCloses)

	_, err = s.FetchPrice(ctx, "NOSUCH")
	assert.ErrorIs(t, err, ErrNotFound)

	chain, err := s.FetchOptionChain(ctx, "IRFC")
	require.NoError(t, err)
	assert.True(t, chain.Empty())

	chain, err = s.FetchOptionChain(ctx, "NIFTY")
	require.NoError(t, err)
	assert.NotNil(t, chain.Strike(24850))

	closes, err := s.FetchHistoricalCloses(ctx, "SBIN", 20)
	require.NoError(t, err)
	assert.Len(t, closes, 20)

	r, err := s.FetchSentiment(ctx, "SBIN")
	require.NoError(t, err)
	assert.Equal(t, model.NeutralSentiment(), r)

	assert.Equal(t, 1500, s.LotSize("SBIN"))
}

func TestStaticSymbols(t *testing.T) {
	assert.Equal(t, []string{"IRFC", "NIFTY", "RELIANCE", "SBIN", "TCS"}, NewDemo().Symbols())
}
