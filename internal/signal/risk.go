package signal

import "goldpulse/internal/domain"

// RiskParams configure stop-loss placement and the reward multiple used for
// the take-profit level.
type RiskParams struct {
	StopLossPercent float64
	RiskRewardRatio float64
}

// DefaultRiskParams matches a 0.5% stop with a 1.5x reward multiple.
var DefaultRiskParams = RiskParams{
	StopLossPercent: 0.5,
	RiskRewardRatio: 1.5,
}

// Levels derives the stop-loss and take-profit for a decision at the given
// price. Both are nil when the action is HOLD.
func (p RiskParams) Levels(action domain.TradeAction, price float64) (stopLoss, takeProfit *float64) {
	switch action {
	case domain.ActionBuy:
		sl := price * (1 - p.StopLossPercent/100)
		tp := price + (price-sl)*p.RiskRewardRatio
		return &sl, &tp
	case domain.ActionSell:
		sl := price * (1 + p.StopLossPercent/100)
		tp := price - (sl-price)*p.RiskRewardRatio
		return &sl, &tp
	}
	return nil, nil
}
