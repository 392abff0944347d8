package core

// Signal is the direction emitted by a strategy on evaluation.
type Signal string

const (
	SignalNone Signal = "None"
	SignalBuy  Signal = "Buy"
	SignalSell Signal = "Sell"
)

// SignalContext is the input to a strategy's evaluation, built by the
// engine from its rolling cache. Modeled on
// other_examples/rxtech-lab-argo-trading__strategy.go's context-in,
// signal-out TradingStrategy contract.
type SignalContext struct {
	SymbolID      SymbolId
	Symbol        string
	MarketData    map[Timeframe][]Bar
	AccountBalance float64
	Timestamp     int64
}

// SignalResult is the output of a strategy's evaluation.
type SignalResult struct {
	Signal                  Signal
	SuggestedStopLossPips   *float64
	SuggestedTakeProfitPips *float64
	SuggestedVolume         *float64
	Reason                  string
}
