package signal

import (
	"math"

	"goldpulse/internal/domain"
)

// Classifier weights over [RSI, MACD, Bollinger, MA-trend, Forecast]. They
// sum to 1, so the fused score is a convex combination of votes in [-2,2].
var fusionWeights = [5]float64{0.2, 0.2, 0.2, 0.2, 0.2}

const (
	strongScore   = 1.0
	moderateScore = 0.2
)

// Fused is the outcome of combining the five classifier votes.
type Fused struct {
	Score    float64
	Action   domain.TradeAction
	Strength domain.StrengthTier
}

// Fuse combines a breakdown into a single score and maps it to an action and
// strength tier, first match wins.
func Fuse(b domain.SignalBreakdown) Fused {
	votes := [5]domain.SignalStrength{b.RSI, b.MACD, b.Bollinger, b.MovingAverage, b.Forecast}

	var score float64
	for i, v := range votes {
		score += fusionWeights[i] * float64(v)
	}
	// Accumulated rounding can push a unanimous vote a few ulps past the
	// convex bound; pin the score to [-2,2].
	score = math.Max(-2, math.Min(2, score))

	f := Fused{Score: score}
	switch {
	case score > strongScore:
		f.Action, f.Strength = domain.ActionBuy, domain.TierStrong
	case score > moderateScore:
		f.Action, f.Strength = domain.ActionBuy, domain.TierModerate
	case score < -strongScore:
		f.Action, f.Strength = domain.ActionSell, domain.TierStrong
	case score < -moderateScore:
		f.Action, f.Strength = domain.ActionSell, domain.TierModerate
	default:
		f.Action, f.Strength = domain.ActionHold, domain.TierNeutral
	}
	return f
}
