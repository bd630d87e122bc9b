package indicator

import (
	"math"

	"goldpulse/internal/domain"
)

const (
	SMAShortWindow   = 20
	SMAMidWindow     = 50
	SMALongWindow    = 200
	EMAWindow        = 20
	RSIWindow        = 14
	MACDFastWindow   = 12
	MACDSlowWindow   = 26
	MACDSignalWindow = 9
	BollingerWindow  = 20
	BollingerStdDevs = 2.0
)

// MinHistory is the series length at which the latest IndicatorSet becomes
// fully defined; the 200-period SMA has the largest window.
const MinHistory = SMALongWindow

// Compute derives one IndicatorSet per input point, aligned by index. The
// caller guarantees chronological order. Leading entries stay undefined until
// each indicator's window is satisfied.
func Compute(series []domain.PricePoint) []domain.IndicatorSet {
	closes := extractCloses(series)

	sma20 := smaSeries(closes, SMAShortWindow)
	sma50 := smaSeries(closes, SMAMidWindow)
	sma200 := smaSeries(closes, SMALongWindow)
	ema20 := emaSeries(closes, EMAWindow)
	rsi14 := rsiSeries(closes, RSIWindow)
	macdLine, signalLine := macdSeries(closes, MACDFastWindow, MACDSlowWindow, MACDSignalWindow)
	upper, middle, lower := bollingerSeries(closes, BollingerWindow, BollingerStdDevs)

	out := make([]domain.IndicatorSet, len(series))
	for i := range series {
		out[i] = domain.IndicatorSet{
			SMA20:           sma20[i],
			SMA50:           sma50[i],
			SMA200:          sma200[i],
			EMA20:           ema20[i],
			RSI14:           rsi14[i],
			MACD:            macdLine[i],
			MACDSignal:      signalLine[i],
			MACDHistogram:   macdLine[i] - signalLine[i],
			BollingerUpper:  upper[i],
			BollingerMiddle: middle[i],
			BollingerLower:  lower[i],
		}
	}
	return out
}

func extractCloses(series []domain.PricePoint) []float64 {
	values := make([]float64, len(series))
	for i := range series {
		values[i] = series[i].Close
	}
	return values
}

// smaSeries keeps a running window sum instead of re-summing each window.
func smaSeries(values []float64, window int) []float64 {
	out := undefinedSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// emaSeries seeds from the first value and smooths recursively, so it is
// defined from the first point onward.
func emaSeries(values []float64, window int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(window) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// rsiSeries uses rolling means of gains and losses over the window. A flat
// window is pinned to 50 and a gain-only window to 100 so that no undefined
// ratio ever leaves this function.
func rsiSeries(values []float64, window int) []float64 {
	out := undefinedSeries(len(values))
	if window <= 0 || len(values) <= window {
		return out
	}

	var gainSum, lossSum float64
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gainSum += math.Max(delta, 0)
		lossSum += math.Max(-delta, 0)
		if i > window {
			old := values[i-window] - values[i-window-1]
			gainSum -= math.Max(old, 0)
			lossSum -= math.Max(-old, 0)
		}
		if i >= window {
			avgGain := gainSum / float64(window)
			avgLoss := lossSum / float64(window)
			out[i] = rsiFromAverages(avgGain, avgLoss)
		}
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

func macdSeries(values []float64, fast, slow, signal int) ([]float64, []float64) {
	fastEMA := emaSeries(values, fast)
	slowEMA := emaSeries(values, slow)
	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := emaSeries(macdLine, signal)
	return macdLine, signalLine
}

// bollingerSeries maintains running sum and sum-of-squares for the window and
// uses the sample standard deviation. Negative variance from floating-point
// cancellation is clamped to zero.
func bollingerSeries(values []float64, window int, stdDevs float64) (upper, middle, lower []float64) {
	n := len(values)
	upper = undefinedSeries(n)
	middle = undefinedSeries(n)
	lower = undefinedSeries(n)
	if window <= 1 || n < window {
		return upper, middle, lower
	}

	var sum, sumSq float64
	for i, v := range values {
		sum += v
		sumSq += v * v
		if i >= window {
			old := values[i-window]
			sum -= old
			sumSq -= old * old
		}
		if i < window-1 {
			continue
		}
		mean := sum / float64(window)
		variance := (sumSq - sum*sum/float64(window)) / float64(window-1)
		if variance < 0 {
			variance = 0
		}
		std := math.Sqrt(variance)
		middle[i] = mean
		upper[i] = mean + stdDevs*std
		lower[i] = mean - stdDevs*std
	}
	return upper, middle, lower
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = domain.Undefined()
	}
	return out
}
