// Package broker implements the deterministic, bar-level simulated
// execution engine.
package broker

import (
	"github.com/shopspring/decimal"

	"barterbench/internal/core"
)

// Decimal-safe side-aware comparisons, ported from
// internal/strategy/exit/handlers/decimal_math.go's decimalLTE/GTE/LT/GT
// family. The teacher's helpers operate on float64 inputs re-boxed into
// decimal.Decimal per call; here the core already carries decimal.Decimal
// end to end, so the comparisons operate on it directly.

func decimalLTE(a, b decimal.Decimal) bool { return a.Cmp(b) <= 0 }
func decimalGTE(a, b decimal.Decimal) bool { return a.Cmp(b) >= 0 }
func decimalLT(a, b decimal.Decimal) bool  { return a.Cmp(b) < 0 }
func decimalGT(a, b decimal.Decimal) bool  { return a.Cmp(b) > 0 }

// stopLossHit reports whether price has crossed stop on the adverse side
// for the given position side, mirroring hitStopLoss's short/default
// branching (short: price >= stop; long: price <= stop).
func stopLossHit(side core.Side, price, stop decimal.Decimal) bool {
	if side == core.Sell {
		return decimalGTE(price, stop)
	}
	return decimalLTE(price, stop)
}

// takeProfitHit reports whether price has reached target on the favorable
// side, mirroring tierTargetHit's short/default branching (short: price <=
// target; long: price >= target).
func takeProfitHit(side core.Side, price, target decimal.Decimal) bool {
	if side == core.Sell {
		return decimalLTE(price, target)
	}
	return decimalGTE(price, target)
}
