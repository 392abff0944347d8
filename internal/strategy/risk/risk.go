// Package risk implements the pluggable stop-loss, take-profit and
// position-sizing policies composed with a signal strategy. Grounded on
// internal/strategy/exit/handlers/*.go's tagged-variant policy structs
// driven by a map[string]any parameter block.
package risk

import (
	"fmt"

	"barterbench/internal/core"
)

// StopLossPolicy computes the stop-loss distance in pips for a newly
// opened position.
type StopLossPolicy interface {
	CalculateStopLossPips(ctx core.SignalContext) (float64, error)
}

// TakeProfitPolicy computes the take-profit distance in pips given the
// already-resolved stop-loss distance.
type TakeProfitPolicy interface {
	CalculateTakeProfitPips(ctx core.SignalContext, stopLossPips float64) (float64, error)
}

// PositionSizingPolicy computes the order volume (lots) given the
// already-resolved stop-loss distance.
type PositionSizingPolicy interface {
	CalculateVolume(ctx core.SignalContext, stopLossPips float64) (float64, error)
}

func positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", core.ErrInvalidArgument, name, v)
	}
	return nil
}
