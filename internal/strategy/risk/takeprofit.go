package risk

import (
	"fmt"

	"barterbench/internal/core"
)

// FixedPipsTakeProfit returns a constant take-profit distance.
type FixedPipsTakeProfit struct {
	Pips float64 `mapstructure:"pips"`
}

func NewFixedPipsTakeProfit(pips float64) (*FixedPipsTakeProfit, error) {
	if err := positive("fixed_pips_take_profit: pips", pips); err != nil {
		return nil, err
	}
	return &FixedPipsTakeProfit{Pips: pips}, nil
}

func (p *FixedPipsTakeProfit) CalculateTakeProfitPips(ctx core.SignalContext, stopLossPips float64) (float64, error) {
	return p.Pips, nil
}

// RiskRewardTakeProfit derives the take-profit distance from the
// stop-loss distance and a reward ratio: tp_pips = sl_pips * ratio.
type RiskRewardTakeProfit struct {
	Ratio float64 `mapstructure:"ratio"`
}

func NewRiskRewardTakeProfit(ratio float64) (*RiskRewardTakeProfit, error) {
	if err := positive("risk_reward_take_profit: ratio", ratio); err != nil {
		return nil, err
	}
	return &RiskRewardTakeProfit{Ratio: ratio}, nil
}

func (p *RiskRewardTakeProfit) CalculateTakeProfitPips(ctx core.SignalContext, stopLossPips float64) (float64, error) {
	if stopLossPips <= 0 {
		return 0, fmt.Errorf("%w: risk_reward_take_profit requires stop_loss_pips > 0", core.ErrInvalidArgument)
	}
	return stopLossPips * p.Ratio, nil
}
