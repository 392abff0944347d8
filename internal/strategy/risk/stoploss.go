package risk

import "barterbench/internal/core"

// FixedPipsStopLoss returns a constant stop-loss distance.
type FixedPipsStopLoss struct {
	Pips float64 `mapstructure:"pips"`
}

func NewFixedPipsStopLoss(pips float64) (*FixedPipsStopLoss, error) {
	if err := positive("fixed_pips_stop_loss: pips", pips); err != nil {
		return nil, err
	}
	return &FixedPipsStopLoss{Pips: pips}, nil
}

func (p *FixedPipsStopLoss) CalculateStopLossPips(ctx core.SignalContext) (float64, error) {
	return p.Pips, nil
}
