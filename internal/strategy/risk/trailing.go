package risk

import (
	"fmt"

	"barterbench/internal/core"
)

// TrailingStopLoss is the one optional enriched risk policy carried over
// from internal/strategy/exit/handlers/trailing_stop.go, stripped of its
// persisted plan-instance state machine and reduced to the side-aware
// activation/ratchet arithmetic the teacher's decimal_math.go helpers
// (activationHit, trailingStopFor, shouldUpdateAnchor) drive. State lives
// on the struct, since a trailing stop inherently tracks a running anchor
// across bars.
type TrailingStopLoss struct {
	TriggerPct float64 `mapstructure:"trigger_pct"`
	TrailPct   float64 `mapstructure:"trail_pct"`

	active bool
	anchor float64
	stop   float64
}

func NewTrailingStopLoss(triggerPct, trailPct float64) (*TrailingStopLoss, error) {
	if triggerPct <= 0 {
		return nil, fmt.Errorf("%w: trailing_stop_pct: trigger_pct must be > 0", core.ErrInvalidArgument)
	}
	if trailPct <= 0 {
		return nil, fmt.Errorf("%w: trailing_stop_pct: trail_pct must be > 0", core.ErrInvalidArgument)
	}
	if trailPct >= triggerPct {
		return nil, fmt.Errorf("%w: trailing_stop_pct: trail_pct must be < trigger_pct", core.ErrInvalidArgument)
	}
	return &TrailingStopLoss{TriggerPct: triggerPct, TrailPct: trailPct}, nil
}

// Update advances the trailing stop for the current price, returning the
// new stop level and whether it changed. entry anchors the activation
// threshold; side selects long/short ratchet direction.
func (t *TrailingStopLoss) Update(side core.Side, entry, price float64) (stop float64, changed bool) {
	activation := relativeTarget(entry, t.TriggerPct, side)

	if !t.active {
		if activationHit(side, price, activation) {
			t.active = true
			t.anchor = price
			t.stop = trailingStopFor(side, price, t.TrailPct)
			return t.stop, true
		}
		return 0, false
	}

	if shouldUpdateAnchor(side, price, t.anchor) {
		t.anchor = price
		candidate := trailingStopFor(side, price, t.TrailPct)
		if shouldUpdateStop(side, candidate, t.stop) {
			t.stop = candidate
			return t.stop, true
		}
	}
	return t.stop, false
}

func (t *TrailingStopLoss) Active() bool { return t.active }

// Reset clears trailing state, e.g. when a new position opens.
func (t *TrailingStopLoss) Reset() {
	t.active = false
	t.anchor = 0
	t.stop = 0
}

// relativeTarget, activationHit, trailingStopFor, shouldUpdateAnchor and
// shouldUpdateStop are ported from decimal_math.go, generalized from
// string-tagged "long"/"short" to core.Side and from ad hoc float64
// comparisons to the engine's own Side type.

func relativeTarget(entry, pct float64, side core.Side) float64 {
	if entry <= 0 {
		return 0
	}
	if side == core.Sell {
		return entry * (1 - pct)
	}
	return entry * (1 + pct)
}

func activationHit(side core.Side, price, activation float64) bool {
	if price <= 0 || activation <= 0 {
		return false
	}
	if side == core.Sell {
		return price <= activation
	}
	return price >= activation
}

func trailingStopFor(side core.Side, anchor, pct float64) float64 {
	if anchor <= 0 || pct <= 0 {
		return 0
	}
	if side == core.Sell {
		return anchor * (1 + pct)
	}
	return anchor * (1 - pct)
}

func shouldUpdateAnchor(side core.Side, price, anchor float64) bool {
	if price <= 0 || anchor <= 0 {
		return false
	}
	if side == core.Sell {
		return price < anchor
	}
	return price > anchor
}

func shouldUpdateStop(side core.Side, candidate, current float64) bool {
	if candidate <= 0 {
		return false
	}
	if current <= 0 {
		return true
	}
	if side == core.Sell {
		return candidate < current
	}
	return candidate > current
}
