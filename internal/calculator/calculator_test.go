package calculator

import (
	"math"
	"testing"

	"OptionSentinel/internal/model"
)

func series(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestCalculateRSI_StrictlyIncreasing(t *testing.T) {
	rsi, err := CalculateRSI(series(100, 1, 14), RSIPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("expected RSI 100 for rising closes, got %.2f", rsi)
	}
}

func TestCalculateRSI_StrictlyDecreasing(t *testing.T) {
	rsi, _ := CalculateRSI(series(200, -2, 20), RSIPeriod)
	if rsi != 0 {
		t.Errorf("expected RSI 0 for falling closes, got %.2f", rsi)
	}
}

func TestCalculateRSI_UsesTrailingWindow(t *testing.T) {
	// Early losses fall outside the trailing 14 changes.
	closes := append(series(120, -4, 6), series(100, 1, 15)...)
	rsi, _ := CalculateRSI(closes, RSIPeriod)
	if rsi != 100 {
		t.Errorf("expected RSI 100 from trailing window, got %.2f", rsi)
	}
}

func TestCalculateRSI_Mixed(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 102, 104, 103, 105, 104, 106, 105, 107, 106, 108, 107}
	rsi, _ := CalculateRSI(closes, RSIPeriod)
	// 7 gains of 2, 7 losses of 1 over the last 14 changes.
	want := 100 - 100/(1+2.0)
	if math.Abs(rsi-want) > 1e-9 {
		t.Errorf("expected %.4f, got %.4f", want, rsi)
	}
}

func TestCalculateRSI_MomentumProxy(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"four points neutral", []float64{1, 2, 3, 4}, 50},
		{"flat", []float64{100, 100, 100, 100, 100, 100}, 50},
		{"ten percent up", []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}, 60},
		{"clamped high", []float64{10, 10, 10, 10, 10, 30, 30, 30, 30, 30}, 100},
		{"clamped low", []float64{100, 100, 100, 100, 100, 1, 1, 1, 1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := CalculateRSI(tt.closes, RSIPeriod)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}
}

func TestCalculateRSI_InvalidPeriod(t *testing.T) {
	if _, err := CalculateRSI([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestCalculateRSI_Range(t *testing.T) {
	for n := 0; n < 40; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + 10*math.Sin(float64(i)*1.3)
		}
		rsi, _ := CalculateRSI(closes, RSIPeriod)
		if rsi < 0 || rsi > 100 {
			t.Fatalf("n=%d: RSI %.2f out of range", n, rsi)
		}
	}
}

func TestCalculateSMA_PartialWindow(t *testing.T) {
	got, err := CalculateSMA([]float64{2, 4, 6}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("expected 4, got %.2f", got)
	}

	got, _ = CalculateSMA(series(1, 1, 20), 10)
	if got != 15.5 {
		t.Errorf("expected 15.5, got %.2f", got)
	}

	if _, err := CalculateSMA(nil, 10); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   model.Trend
	}{
		{"too short", series(100, 5, 9), model.TrendSideways},
		{"up", []float64{100, 100, 100, 100, 100, 103, 103, 103, 103, 103}, model.TrendUp},
		{"down", []float64{100, 100, 100, 100, 100, 97, 97, 97, 97, 97}, model.TrendDown},
		{"inside band", []float64{100, 100, 100, 100, 100, 101, 101, 101, 101, 101}, model.TrendSideways},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrend(tt.closes); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTechnical_ShortSeries(t *testing.T) {
	snap := Technical([]float64{250})
	if snap.RSI != 50 || snap.SMA10 != 250 || snap.SMA20 != 250 || snap.Trend != model.TrendSideways {
		t.Errorf("unexpected snapshot for single close: %+v", snap)
	}
	snap = Technical(nil)
	if snap.RSI != 50 || snap.SMA10 != 0 {
		t.Errorf("unexpected snapshot for empty series: %+v", snap)
	}
}

func TestTechnical_Full(t *testing.T) {
	snap := Technical(series(100, 1, 30))
	if snap.RSI != 100 {
		t.Errorf("expected RSI 100, got %.2f", snap.RSI)
	}
	if snap.SMA10 != 124.5 {
		t.Errorf("expected SMA10 124.5, got %.2f", snap.SMA10)
	}
	if snap.SMA20 != 119.5 {
		t.Errorf("expected SMA20 119.5, got %.2f", snap.SMA20)
	}
	if snap.Trend != model.TrendUp {
		t.Errorf("expected UPTREND, got %s", snap.Trend)
	}
}

func TestCalculateRange(t *testing.T) {
	bars := []model.OHLCV{
		{High: 105, Low: 95},
		{High: 110, Low: 99},
		{High: 103, Low: 90},
	}
	high, low, err := CalculateRange(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 110 || low != 90 {
		t.Errorf("expected 110/90, got %.0f/%.0f", high, low)
	}
	if _, _, err := CalculateRange(nil); err == nil {
		t.Error("expected error for no bars")
	}
}

func TestChangePercent(t *testing.T) {
	if got := ChangePercent(103, 100); math.Abs(got-3) > 1e-9 {
		t.Errorf("expected 3, got %.4f", got)
	}
	if got := ChangePercent(103, 0); got != 0 {
		t.Errorf("expected 0 for zero open, got %.4f", got)
	}
}
