package collector

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"OptionSentinel/internal/model"
)

const (
	headlinesPerSource = 5
	minHeadlineLength  = 20
	momentumThreshold  = 0.15
)

var positiveWords = []string{
	"surge", "jump", "rally", "gain", "profit", "growth", "up", "rise",
	"high", "beat", "strong", "positive", "bullish", "upgrade", "buy",
	"outperform", "record", "boost", "success", "winner", "top",
}

var negativeWords = []string{
	"fall", "drop", "crash", "loss", "down", "decline", "weak", "negative",
	"bearish", "downgrade", "sell", "underperform", "miss", "concern",
	"worry", "risk", "threat", "bottom", "worst", "fail",
}

// News scores headline sentiment from Google News and Yahoo Finance pages.
type News struct {
	client    *http.Client
	googleURL string
	yahooURL  string
	// pause spaces the two page loads for one symbol.
	pause time.Duration
}

// NewNews creates a news source. Empty URLs default to the public sites.
func NewNews(client *http.Client, googleURL, yahooURL string) *News {
	if googleURL == "" {
		googleURL = "https://www.google.com/search"
	}
	if yahooURL == "" {
		yahooURL = "https://finance.yahoo.com"
	}
	return &News{
		client:    client,
		googleURL: googleURL,
		yahooURL:  strings.TrimRight(yahooURL, "/"),
		pause:     time.Second,
	}
}

// FetchSentiment averages the keyword scores of both sites. A site that fails
// contributes a neutral zero; the call itself only fails on cancellation.
func (n *News) FetchSentiment(ctx context.Context, symbol string) (model.SentimentResult, error) {
	google, err := n.googleHeadlines(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("google news parse failed")
	}

	select {
	case <-ctx.Done():
		return model.NeutralSentiment(), ctx.Err()
	case <-time.After(n.pause):
	}

	yahoo, err := n.yahooHeadlines(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("yahoo news parse failed")
	}

	return CombineSentiment(google, yahoo), nil
}

// ScoreHeadlines returns (positive-negative)/(positive+negative) keyword hits,
// rounded to two decimals, or 0 when no keyword occurs.
func ScoreHeadlines(headlines []string) float64 {
	if len(headlines) == 0 {
		return 0
	}
	text := strings.ToLower(strings.Join(headlines, " "))
	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(text, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(text, w)
	}
	if pos+neg == 0 {
		return 0
	}
	return round2(float64(pos-neg) / float64(pos+neg))
}

// CombineSentiment averages the per-site scores and classifies the momentum.
func CombineSentiment(google, yahoo []string) model.SentimentResult {
	score := round2((ScoreHeadlines(google) + ScoreHeadlines(yahoo)) / 2)
	momentum := model.MomentumNeutral
	switch {
	case score > momentumThreshold:
		momentum = model.MomentumPositive
	case score < -momentumThreshold:
		momentum = model.MomentumNegative
	}
	return model.SentimentResult{
		Score:         score,
		Momentum:      momentum,
		HeadlineCount: len(google) + len(yahoo),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (n *News) googleHeadlines(ctx context.Context, symbol string) ([]string, error) {
	q := url.Values{}
	q.Set("q", symbol+" stock news india")
	q.Set("tbm", "nws")
	q.Set("hl", "en")
	doc, err := n.document(ctx, n.googleURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var headlines []string
	doc.Find("div.SoaBEf").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if title := strings.TrimSpace(s.Find("div.MBeuO").Text()); title != "" {
			headlines = append(headlines, title)
		}
		return len(headlines) < headlinesPerSource
	})
	if len(headlines) == 0 {
		headlines = collectTitles(doc.Find(`div[role="heading"]`))
	}
	return headlines, nil
}

func (n *News) yahooHeadlines(ctx context.Context, symbol string) ([]string, error) {
	doc, err := n.document(ctx, fmt.Sprintf("%s/quote/%s/news", n.yahooURL, url.PathEscape(yahooTicker(symbol))))
	if err != nil {
		return nil, err
	}
	items := doc.Find(`h3.Mb\(5px\)`)
	if items.Length() == 0 {
		items = doc.Find("h3")
	}
	return collectTitles(items), nil
}

// collectTitles keeps the first headlines long enough to not be navigation noise.
func collectTitles(sel *goquery.Selection) []string {
	var out []string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if title := strings.TrimSpace(s.Text()); len(title) > minHeadlineLength {
			out = append(out, title)
		}
		return len(out) < headlinesPerSource
	})
	return out
}

func (n *News) document(ctx context.Context, u string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
