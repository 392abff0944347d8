package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"barterbench/internal/core"
)

const minLotSize = 0.01

// FixedLotPositionSizing returns a constant lot size.
type FixedLotPositionSizing struct {
	Lots float64 `mapstructure:"lots"`
}

func NewFixedLotPositionSizing(lots float64) (*FixedLotPositionSizing, error) {
	if err := positive("fixed_lot_position_sizing: lots", lots); err != nil {
		return nil, err
	}
	return &FixedLotPositionSizing{Lots: lots}, nil
}

func (p *FixedLotPositionSizing) CalculateVolume(ctx core.SignalContext, stopLossPips float64) (float64, error) {
	return p.Lots, nil
}

// RiskPercentPositionSizing sizes the position from a percentage of the
// running account balance and the resolved stop-loss distance:
// round2(max(0.01, (balance*pct/100)/(sl_pips*pip_value))). Rounding uses
// decimal.Decimal.Round (half away from zero), matching the teacher's
// decToFloat/decFromFloat round-trip idiom in decimal_math.go.
type RiskPercentPositionSizing struct {
	Percent  float64 `mapstructure:"percent"`
	PipValue float64 `mapstructure:"pip_value"`
}

func NewRiskPercentPositionSizing(percent, pipValue float64) (*RiskPercentPositionSizing, error) {
	if percent <= 0 || percent > 100 {
		return nil, fmt.Errorf("%w: risk_percent_position_sizing: percent must be in (0, 100], got %v", core.ErrInvalidArgument, percent)
	}
	if pipValue <= 0 {
		pipValue = 10
	}
	return &RiskPercentPositionSizing{Percent: percent, PipValue: pipValue}, nil
}

func (p *RiskPercentPositionSizing) CalculateVolume(ctx core.SignalContext, stopLossPips float64) (float64, error) {
	if stopLossPips <= 0 {
		return 0, fmt.Errorf("%w: risk_percent_position_sizing requires stop_loss_pips > 0", core.ErrInvalidArgument)
	}
	riskAmount := decimal.NewFromFloat(ctx.AccountBalance).Mul(decimal.NewFromFloat(p.Percent / 100))
	denom := decimal.NewFromFloat(stopLossPips).Mul(decimal.NewFromFloat(p.PipValue))
	raw := riskAmount.Div(denom)

	floor := decimal.NewFromFloat(minLotSize)
	if raw.LessThan(floor) {
		raw = floor
	}
	rounded := raw.Round(2)
	f, _ := rounded.Float64()
	return f, nil
}
