package domain

import (
	"math"
	"time"
)

// PricePoint is a single bar of a price series. Points are immutable once
// created and ordered by ascending timestamp within a series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Source    string    `json:"source,omitempty"`
	Timeframe string    `json:"timeframe"`
}

// Undefined marks an indicator value whose window is not yet satisfied.
func Undefined() float64 {
	return math.NaN()
}

// IsDefined reports whether an indicator value has been computed.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// IndicatorSet holds the indicator values derived from one PricePoint.
// Fields stay undefined until enough prior closes exist for their window.
type IndicatorSet struct {
	SMA20           float64 `json:"sma_20"`
	SMA50           float64 `json:"sma_50"`
	SMA200          float64 `json:"sma_200"`
	EMA20           float64 `json:"ema_20"`
	RSI14           float64 `json:"rsi_14"`
	MACD            float64 `json:"macd"`
	MACDSignal      float64 `json:"macd_signal"`
	MACDHistogram   float64 `json:"macd_histogram"`
	BollingerUpper  float64 `json:"bollinger_upper"`
	BollingerMiddle float64 `json:"bollinger_middle"`
	BollingerLower  float64 `json:"bollinger_lower"`
}

// Complete reports whether every field a classifier reads is defined.
func (s IndicatorSet) Complete() bool {
	return IsDefined(s.SMA20) &&
		IsDefined(s.SMA50) &&
		IsDefined(s.SMA200) &&
		IsDefined(s.EMA20) &&
		IsDefined(s.RSI14) &&
		IsDefined(s.MACD) &&
		IsDefined(s.MACDSignal) &&
		IsDefined(s.MACDHistogram) &&
		IsDefined(s.BollingerUpper) &&
		IsDefined(s.BollingerMiddle) &&
		IsDefined(s.BollingerLower)
}

// SignalStrength is the ordinal strength of a single classifier's vote.
type SignalStrength int

const (
	StrongSell SignalStrength = -2
	Sell       SignalStrength = -1
	Neutral    SignalStrength = 0
	Buy        SignalStrength = 1
	StrongBuy  SignalStrength = 2
)

func (s SignalStrength) String() string {
	switch s {
	case StrongSell:
		return "STRONG_SELL"
	case Sell:
		return "SELL"
	case Neutral:
		return "NEUTRAL"
	case Buy:
		return "BUY"
	case StrongBuy:
		return "STRONG_BUY"
	}
	return "UNKNOWN"
}

func (s SignalStrength) IsValid() bool {
	return s >= StrongSell && s <= StrongBuy
}

// MarshalText makes the breakdown render as names rather than raw ordinals.
func (s SignalStrength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TradeAction is the final decision of a fused evaluation.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
	ActionHold TradeAction = "HOLD"
)

// StrengthTier qualifies how decisive the fused score was.
type StrengthTier string

const (
	TierStrong   StrengthTier = "STRONG"
	TierModerate StrengthTier = "MODERATE"
	TierNeutral  StrengthTier = "NEUTRAL"
)

// SignalBreakdown carries the five independent classifier votes that fed a
// decision.
type SignalBreakdown struct {
	RSI           SignalStrength `json:"rsi"`
	MACD          SignalStrength `json:"macd"`
	Bollinger     SignalStrength `json:"bollinger"`
	MovingAverage SignalStrength `json:"moving_averages"`
	Forecast      SignalStrength `json:"forecast"`
}

// TradeSignal is the record produced by one evaluation. It is created fresh
// every time and never persisted by this package.
type TradeSignal struct {
	Timestamp    time.Time       `json:"timestamp"`
	Timeframe    string          `json:"timeframe"`
	CurrentPrice float64         `json:"current_price"`
	Action       TradeAction     `json:"action"`
	Strength     StrengthTier    `json:"signal_strength"`
	Score        float64         `json:"weighted_score"`
	Signals      SignalBreakdown `json:"signals"`
	Indicators   IndicatorSet    `json:"indicators"`
	StopLoss     *float64        `json:"stop_loss,omitempty"`
	TakeProfit   *float64        `json:"take_profit,omitempty"`

	// Forecast is the list of future price estimates the evaluation consumed,
	// if any. ForecastUnavailable is set when none was supplied and the
	// forecast vote degraded to NEUTRAL.
	Forecast            []float64 `json:"forecast,omitempty"`
	ForecastUnavailable bool      `json:"forecast_unavailable,omitempty"`
}
