package engine

import "barterbench/internal/core"

// StrategyInstance is the capability set the engine dispatches bars to:
// {name, version, main_timeframe, required_timeframes, evaluate}. Concrete
// strategies (internal/strategy) satisfy this structurally so the engine
// never imports the strategy package.
type StrategyInstance interface {
	Name() string
	Version() int
	MainTimeframe() core.Timeframe
	RequiredTimeframes() map[core.Timeframe]int
	Evaluate(ctx core.SignalContext) (core.SignalResult, error)
}
