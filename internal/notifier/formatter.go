package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"OptionSentinel/internal/model"
	"OptionSentinel/internal/recorder"
)

// HelpText lists the bot commands.
const HelpText = "Available commands:\n" +
	"• /analyze SYMBOL - analyse one underlying now\n" +
	"• /summary - digest of the latest scan\n" +
	"• /scan - run a full scan now\n" +
	"• /help - this message"

var tagStripper = strings.NewReplacer("<b>", "", "</b>", "")

// PlainText converts a formatted report to terminal text.
func PlainText(s string) string {
	return html.UnescapeString(tagStripper.Replace(s))
}

// rupees renders v as whole rupees with thousands separators.
func rupees(v float64) string {
	return "₹" + humanize.Comma(int64(math.Round(v)))
}

func tierIcon(t model.Tier) string {
	switch t {
	case model.TierHigh:
		return "🟢"
	case model.TierMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// FormatRecommendation renders one analysis result as a Telegram HTML block.
func FormatRecommendation(res *model.AnalysisResult) string {
	var b strings.Builder
	rec := res.Recommendation

	b.WriteString(fmt.Sprintf("🎯 <b>%s</b> | ₹%.2f (%+.2f%%) | %s %s\n",
		html.EscapeString(res.Symbol), res.Price.CurrentPrice, res.Price.ChangePercent,
		tierIcon(res.Tier), res.Tier))
	b.WriteString(fmt.Sprintf("RSI %.1f | %s | sentiment %s (%+.2f)\n",
		res.Technical.RSI, res.Technical.Trend, res.Sentiment.Momentum, res.Sentiment.Score))
	b.WriteString(fmt.Sprintf("📋 Strategy: <b>%s</b>\n", html.EscapeString(rec.Archetype.String())))

	switch {
	case rec.Rejected():
		b.WriteString(fmt.Sprintf("❌ %s rejected: %s\n",
			html.EscapeString(rec.Intended.String()), html.EscapeString(rec.RejectionReason)))
		b.WriteString("💰 Investment ₹0 | Max profit ₹0 | Max loss ₹0\n")
	case !rec.Archetype.TakesPosition():
		b.WriteString(html.EscapeString(rec.Rationale) + "\n")
	default:
		writeTrades(&b, rec)
	}

	if bd := rec.Breakdown; bd != nil {
		b.WriteString(fmt.Sprintf("📊 Confidence: base %d → final <b>%d%%</b> (data %.1f + history %.1f + R:R %.1f)\n",
			bd.BaseConfidence, rec.FinalConfidence, bd.DataQuality, bd.HistoricalScore, bd.RiskRewardScore))
	} else {
		b.WriteString(fmt.Sprintf("📊 Confidence: base %d → final <b>%d%%</b>\n", res.BaseConfidence, rec.FinalConfidence))
	}
	if bt := rec.Backtest; bt != nil {
		b.WriteString(fmt.Sprintf("🧪 Backtest %s %.1f/100: %s\n", bt.Verdict, bt.Score, html.EscapeString(bt.Reason)))
	}
	return b.String()
}

func writeTrades(b *strings.Builder, rec model.StrategyRecommendation) {
	b.WriteString(fmt.Sprintf("Strikes: %s | Expiry %s\n", html.EscapeString(rec.Strikes), html.EscapeString(rec.Expiry)))
	for _, leg := range rec.Legs {
		line := fmt.Sprintf("  • %s %d × %.0f %s @ ₹%.2f", leg.Action, leg.Lots, leg.Strike, leg.Type, leg.Premium)
		if leg.Source == model.PremiumFallback {
			line += " (estimated)"
		} else if leg.Volume > 0 {
			line += fmt.Sprintf(" (vol %s, OI %s)", humanize.Comma(int64(leg.Volume)), humanize.Comma(int64(leg.OpenInt)))
		}
		b.WriteString(line + "\n")
	}

	maxProfit := rupees(rec.MaxProfit)
	if rec.MaxProfitUnbounded {
		maxProfit = "unlimited"
	}
	b.WriteString(fmt.Sprintf("💰 Lots %d × %d | Premium %s | Margin %s\n",
		rec.Lots, rec.LotSize, rupees(rec.Investment), rupees(rec.Margin)))
	b.WriteString(fmt.Sprintf("   Max profit %s | Max loss %s | R:R 1:%.2f\n",
		maxProfit, rupees(rec.MaxLoss), rec.RiskReward))

	if len(rec.Breakevens) > 0 {
		be := make([]string, 0, len(rec.Breakevens))
		for _, v := range rec.Breakevens {
			be = append(be, fmt.Sprintf("₹%.1f", v))
		}
		b.WriteString("   Breakeven " + strings.Join(be, " / ") + "\n")
	}
	b.WriteString(html.EscapeString(rec.Rationale) + "\n")
}

// FormatScanSummary renders the tier distribution and accepted picks of a scan.
func FormatScanSummary(results []model.AnalysisResult, requested int, elapsed time.Duration) string {
	var b strings.Builder
	counts := map[model.Tier]int{}
	var picks []model.AnalysisResult
	for _, r := range results {
		counts[r.Tier]++
		if r.Recommendation.Archetype.TakesPosition() {
			picks = append(picks, r)
		}
	}

	b.WriteString(fmt.Sprintf("📊 <b>OptionSentinel scan</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Analysed %d of %d symbols in %s\n", len(results), requested, elapsed.Round(time.Second)))
	b.WriteString(fmt.Sprintf("🟢 HIGH %d | 🟡 MEDIUM %d | 🔴 LOW %d\n",
		counts[model.TierHigh], counts[model.TierMedium], counts[model.TierLow]))

	if len(picks) == 0 {
		b.WriteString("\nNo strategy passed the confidence gate.")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\n✅ <b>%d recommendations</b>\n", len(picks)))
	for _, r := range picks {
		rec := r.Recommendation
		b.WriteString(fmt.Sprintf("%s %s: %s %d%% (%s)\n", tierIcon(r.Tier),
			html.EscapeString(r.Symbol), html.EscapeString(rec.Archetype.String()),
			rec.FinalConfidence, rupees(rec.Investment)))
	}
	return b.String()
}

// FormatStoredSummary renders a persisted run digest.
func FormatStoredSummary(s *recorder.RunSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>Latest scan</b> | %s (%s)\n\n", s.StartedAt.Format("2006-01-02 15:04"), s.Trigger))
	b.WriteString(fmt.Sprintf("Analysed %d of %d symbols\n", s.Analyzed, s.Symbols))
	b.WriteString(fmt.Sprintf("🟢 HIGH %d | 🟡 MEDIUM %d | 🔴 LOW %d\n",
		s.Counts[model.TierHigh], s.Counts[model.TierMedium], s.Counts[model.TierLow]))
	if len(s.Top) > 0 {
		b.WriteString("\n<b>Top picks</b>\n")
		for i, p := range s.Top {
			b.WriteString(fmt.Sprintf("%d. %s %s %d%% (%s)\n", i+1,
				html.EscapeString(p.Symbol), html.EscapeString(p.Archetype), p.FinalConfidence, rupees(p.Investment)))
		}
	}
	return b.String()
}
