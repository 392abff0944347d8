package strategy

import (
	"barterbench/internal/core"
	"barterbench/internal/engine"
)

// RiskComposedStrategy wraps a bare signal generator and overwrites its
// suggested stop-loss/take-profit/volume with the output of a resolved
// RiskPolicies triple, so a StrategyDefinition's risk block actually drives
// execution instead of whatever constants the inner strategy hardcodes.
// Grounded on internal/engine/strategy.go's StrategyInstance contract: the
// composition itself is a StrategyInstance so the engine never has to know
// a policy layer exists.
type RiskComposedStrategy struct {
	inner    engine.StrategyInstance
	policies RiskPolicies
}

func NewRiskComposedStrategy(inner engine.StrategyInstance, policies RiskPolicies) *RiskComposedStrategy {
	return &RiskComposedStrategy{inner: inner, policies: policies}
}

func (s *RiskComposedStrategy) Name() string    { return s.inner.Name() }
func (s *RiskComposedStrategy) Version() int     { return s.inner.Version() }
func (s *RiskComposedStrategy) MainTimeframe() core.Timeframe { return s.inner.MainTimeframe() }

func (s *RiskComposedStrategy) RequiredTimeframes() map[core.Timeframe]int {
	return s.inner.RequiredTimeframes()
}

// Evaluate defers signal direction entirely to the inner strategy; a risk
// policy never overrides None/Buy/Sell, only the suggested SL/TP/volume
// that accompany a Buy or Sell.
func (s *RiskComposedStrategy) Evaluate(ctx core.SignalContext) (core.SignalResult, error) {
	result, err := s.inner.Evaluate(ctx)
	if err != nil || (result.Signal != core.SignalBuy && result.Signal != core.SignalSell) {
		return result, err
	}

	slPips, err := s.policies.StopLoss.CalculateStopLossPips(ctx)
	if err != nil {
		return core.SignalResult{}, err
	}
	tpPips, err := s.policies.TakeProfit.CalculateTakeProfitPips(ctx, slPips)
	if err != nil {
		return core.SignalResult{}, err
	}
	volume, err := s.policies.PositionSizing.CalculateVolume(ctx, slPips)
	if err != nil {
		return core.SignalResult{}, err
	}

	result.SuggestedStopLossPips = &slPips
	result.SuggestedTakeProfitPips = &tpPips
	result.SuggestedVolume = &volume
	return result, nil
}

// riskConfigured reports whether def names any risk policy type, i.e. the
// definition actually opts into the pluggable risk layer rather than
// relying on a strategy's built-in defaults.
func riskConfigured(r core.StrategyRisk) bool {
	return r.StopLoss.Type != "" || r.TakeProfit.Type != "" || r.PositionSizing.Type != ""
}
