package signal

import (
	"math"

	"goldpulse/internal/domain"
)

const (
	rsiOversold       = 30
	rsiDeepOversold   = 20
	rsiOverbought     = 70
	rsiDeepOverbought = 80

	macdHistRatio = 0.1

	bollingerWideBand = 0.05

	forecastStrongPct   = 1.5
	forecastModeratePct = 0.5
)

// ClassifyRSI maps an RSI value to a vote. Bands follow the usual 30/70
// oversold/overbought levels with 20/80 extremes.
func ClassifyRSI(rsi float64) domain.SignalStrength {
	switch {
	case rsi < rsiDeepOversold:
		return domain.StrongBuy
	case rsi < rsiOversold:
		return domain.Buy
	case rsi <= rsiOverbought:
		return domain.Neutral
	case rsi <= rsiDeepOverbought:
		return domain.Sell
	default:
		return domain.StrongSell
	}
}

// ClassifyMACD votes on the MACD line relative to its signal line; the vote
// strengthens when the histogram exceeds a tenth of the MACD magnitude.
func ClassifyMACD(macd, signalLine, histogram float64) domain.SignalStrength {
	switch {
	case macd > signalLine:
		if histogram > 0 && histogram > macdHistRatio*math.Abs(macd) {
			return domain.StrongBuy
		}
		return domain.Buy
	case macd < signalLine:
		if histogram < 0 && math.Abs(histogram) > macdHistRatio*math.Abs(macd) {
			return domain.StrongSell
		}
		return domain.Sell
	default:
		return domain.Neutral
	}
}

// ClassifyBollinger votes on where the price sits relative to the bands. A
// close outside the bands is stronger when the bands are wide. A zero middle
// band yields zero bandwidth rather than an undefined ratio.
func ClassifyBollinger(price, upper, middle, lower float64) domain.SignalStrength {
	bandwidth := 0.0
	if middle != 0 {
		bandwidth = (upper - lower) / middle
	}

	switch {
	case price < lower:
		if bandwidth > bollingerWideBand {
			return domain.StrongBuy
		}
		return domain.Buy
	case price > upper:
		if bandwidth > bollingerWideBand {
			return domain.StrongSell
		}
		return domain.Sell
	case price < middle:
		return domain.Buy
	case price > middle:
		return domain.Sell
	default:
		return domain.Neutral
	}
}

// ClassifyMovingAverage votes on the price relative to the short and mid SMAs
// and on their ordering. Mixed placements are neutral.
func ClassifyMovingAverage(price, sma20, sma50 float64) domain.SignalStrength {
	switch {
	case price > sma20 && price > sma50 && sma20 > sma50:
		return domain.StrongBuy
	case price > sma20 && price > sma50:
		return domain.Buy
	case price < sma20 && price < sma50 && sma20 < sma50:
		return domain.StrongSell
	case price < sma20 && price < sma50:
		return domain.Sell
	default:
		return domain.Neutral
	}
}

// ClassifyForecast votes on the percentage move from the current price to the
// mean of the predicted prices. An empty forecast is a neutral vote; callers
// surface the degradation separately.
func ClassifyForecast(current float64, predicted []float64) domain.SignalStrength {
	if len(predicted) == 0 || current == 0 {
		return domain.Neutral
	}

	var sum float64
	for _, p := range predicted {
		sum += p
	}
	mean := sum / float64(len(predicted))
	percentChange := (mean - current) / current * 100

	switch {
	case percentChange > forecastStrongPct:
		return domain.StrongBuy
	case percentChange > forecastModeratePct:
		return domain.Buy
	case percentChange < -forecastStrongPct:
		return domain.StrongSell
	case percentChange < -forecastModeratePct:
		return domain.Sell
	default:
		return domain.Neutral
	}
}
