package strategy

import "barterbench/internal/core"

// BuyOnFirstBarStrategy emits a single Buy on the first invocation in which
// market_data[main_timeframe] is non-empty, then nothing until Reset. The
// built-in trivial strategy used by tests, per the strategy composition
// design.
type BuyOnFirstBarStrategy struct {
	mainTimeframe core.Timeframe
	fired         bool
}

func NewBuyOnFirstBarStrategy(mainTimeframe core.Timeframe) *BuyOnFirstBarStrategy {
	return &BuyOnFirstBarStrategy{mainTimeframe: mainTimeframe}
}

func (s *BuyOnFirstBarStrategy) Name() string    { return "BuyOnFirstBar" }
func (s *BuyOnFirstBarStrategy) Version() int     { return 1 }
func (s *BuyOnFirstBarStrategy) MainTimeframe() core.Timeframe { return s.mainTimeframe }

func (s *BuyOnFirstBarStrategy) RequiredTimeframes() map[core.Timeframe]int {
	return map[core.Timeframe]int{s.mainTimeframe: 1}
}

// Reset clears has-fired state so the strategy can be reused across runs.
func (s *BuyOnFirstBarStrategy) Reset() {
	s.fired = false
}

func (s *BuyOnFirstBarStrategy) HasFired() bool { return s.fired }

func (s *BuyOnFirstBarStrategy) Evaluate(ctx core.SignalContext) (core.SignalResult, error) {
	if s.fired {
		return core.SignalResult{Signal: core.SignalNone}, nil
	}
	if len(ctx.MarketData[s.mainTimeframe]) == 0 {
		return core.SignalResult{Signal: core.SignalNone}, nil
	}
	s.fired = true

	slPips := 10.0
	tpPips := 20.0
	volume := 0.01
	return core.SignalResult{
		Signal:                  core.SignalBuy,
		SuggestedStopLossPips:   &slPips,
		SuggestedTakeProfitPips: &tpPips,
		SuggestedVolume:         &volume,
		Reason:                  "first bar seen",
	}, nil
}
