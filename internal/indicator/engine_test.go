package indicator

import (
	"math"
	"testing"
	"time"

	"goldpulse/internal/domain"
)

func makeSeries(closes []float64) []domain.PricePoint {
	base := time.Unix(0, 0).UTC()
	series := make([]domain.PricePoint, len(closes))
	for i, c := range closes {
		series[i] = domain.PricePoint{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    100,
			Timeframe: "1h",
		}
	}
	return series
}

func sawtooth(start float64, n int) []float64 {
	closes := make([]float64, n)
	closes[0] = start
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1.0
		} else {
			closes[i] = closes[i-1] - 0.6
		}
	}
	return closes
}

func TestComputeAlignsAndDefinesPerWindow(t *testing.T) {
	series := makeSeries(sawtooth(1900, 250))
	sets := Compute(series)
	if len(sets) != len(series) {
		t.Fatalf("expected %d sets, got %d", len(series), len(sets))
	}

	checks := []struct {
		name       string
		firstIndex int
		value      func(domain.IndicatorSet) float64
	}{
		{"sma_20", SMAShortWindow - 1, func(s domain.IndicatorSet) float64 { return s.SMA20 }},
		{"sma_50", SMAMidWindow - 1, func(s domain.IndicatorSet) float64 { return s.SMA50 }},
		{"sma_200", SMALongWindow - 1, func(s domain.IndicatorSet) float64 { return s.SMA200 }},
		{"ema_20", 0, func(s domain.IndicatorSet) float64 { return s.EMA20 }},
		{"rsi_14", RSIWindow, func(s domain.IndicatorSet) float64 { return s.RSI14 }},
		{"macd", 0, func(s domain.IndicatorSet) float64 { return s.MACD }},
		{"bollinger_middle", BollingerWindow - 1, func(s domain.IndicatorSet) float64 { return s.BollingerMiddle }},
	}
	for _, c := range checks {
		if c.firstIndex > 0 && domain.IsDefined(c.value(sets[c.firstIndex-1])) {
			t.Fatalf("%s defined at index %d, expected undefined", c.name, c.firstIndex-1)
		}
		if !domain.IsDefined(c.value(sets[c.firstIndex])) {
			t.Fatalf("%s undefined at index %d, expected defined", c.name, c.firstIndex)
		}
	}

	if !sets[len(sets)-1].Complete() {
		t.Fatal("expected latest indicator set to be complete")
	}
}

func TestSMAMatchesNaiveWindowMean(t *testing.T) {
	closes := sawtooth(100, 60)
	out := smaSeries(closes, 20)

	for i := 19; i < len(closes); i++ {
		var sum float64
		for j := i - 19; j <= i; j++ {
			sum += closes[j]
		}
		want := sum / 20
		if math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("sma at %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestEMASeedsFromFirstValue(t *testing.T) {
	closes := []float64{100, 110, 120}
	out := emaSeries(closes, 20)
	if out[0] != 100 {
		t.Fatalf("expected ema seeded from first close, got %v", out[0])
	}
	alpha := 2.0 / 21.0
	want := alpha*110 + (1-alpha)*100
	if math.Abs(out[1]-want) > 1e-12 {
		t.Fatalf("ema at 1: got %v, want %v", out[1], want)
	}
}

func TestRSIStaysWithinBounds(t *testing.T) {
	series := makeSeries(sawtooth(1900, 300))
	sets := Compute(series)
	for i, s := range sets {
		if !domain.IsDefined(s.RSI14) {
			continue
		}
		if s.RSI14 < 0 || s.RSI14 > 100 {
			t.Fatalf("rsi out of bounds at %d: %v", i, s.RSI14)
		}
	}
}

func TestRSIFlatSeriesIsFifty(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 2000
	}
	out := rsiSeries(closes, RSIWindow)
	if out[len(out)-1] != 50 {
		t.Fatalf("expected rsi 50 on flat closes, got %v", out[len(out)-1])
	}
}

func TestRSIGainOnlySeriesIsHundred(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 2000 + float64(i)
	}
	out := rsiSeries(closes, RSIWindow)
	if out[len(out)-1] != 100 {
		t.Fatalf("expected rsi 100 on gain-only closes, got %v", out[len(out)-1])
	}
}

func TestBollingerBandOrdering(t *testing.T) {
	series := makeSeries(sawtooth(1900, 250))
	sets := Compute(series)
	for i, s := range sets {
		if !domain.IsDefined(s.BollingerMiddle) {
			continue
		}
		if s.BollingerUpper < s.BollingerMiddle || s.BollingerMiddle < s.BollingerLower {
			t.Fatalf("band ordering violated at %d: %v %v %v", i, s.BollingerUpper, s.BollingerMiddle, s.BollingerLower)
		}
	}
}

func TestBollingerUsesSampleStdDev(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	upper, middle, lower := bollingerSeries(closes, 20, 2.0)

	wantMean := 10.5
	wantStd := math.Sqrt(35) // sample stdev of 1..20
	if math.Abs(middle[19]-wantMean) > 1e-9 {
		t.Fatalf("middle: got %v, want %v", middle[19], wantMean)
	}
	if math.Abs(upper[19]-(wantMean+2*wantStd)) > 1e-9 {
		t.Fatalf("upper: got %v, want %v", upper[19], wantMean+2*wantStd)
	}
	if math.Abs(lower[19]-(wantMean-2*wantStd)) > 1e-9 {
		t.Fatalf("lower: got %v, want %v", lower[19], wantMean-2*wantStd)
	}
}

func TestFlatSeriesIndicators(t *testing.T) {
	closes := make([]float64, 220)
	for i := range closes {
		closes[i] = 2000
	}
	sets := Compute(makeSeries(closes))
	last := sets[len(sets)-1]

	if last.RSI14 != 50 {
		t.Fatalf("expected rsi 50, got %v", last.RSI14)
	}
	if math.Abs(last.MACD) > 1e-9 || math.Abs(last.MACDHistogram) > 1e-9 {
		t.Fatalf("expected macd ~0, got %v hist %v", last.MACD, last.MACDHistogram)
	}
	if math.Abs(last.BollingerUpper-last.BollingerMiddle) > 1e-9 ||
		math.Abs(last.BollingerMiddle-last.BollingerLower) > 1e-9 {
		t.Fatalf("expected collapsed bands, got %v %v %v", last.BollingerUpper, last.BollingerMiddle, last.BollingerLower)
	}
	if last.EMA20 != 2000 || last.SMA200 != 2000 {
		t.Fatalf("expected flat averages, got ema %v sma200 %v", last.EMA20, last.SMA200)
	}
}

func TestComputeEmptySeries(t *testing.T) {
	if sets := Compute(nil); len(sets) != 0 {
		t.Fatalf("expected no sets for empty series, got %d", len(sets))
	}
}
