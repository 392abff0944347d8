package core

import "github.com/shopspring/decimal"

// Bar is an OHLCV aggregation over a fixed timeframe, timestamped by its
// close. Grounded on internal/market/candle.go's Candle, renamed and moved
// to decimal prices per the teacher's decimal_math.go convention for any
// value compared across sides.
type Bar struct {
	SymbolID  SymbolId
	Timeframe Timeframe
	Timestamp int64 // epoch seconds of bar close
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// Tick is not used by the bar-only simulated executor; carried for
// market-data feed parity with live/paper modes.
type Tick struct {
	Timestamp int64
	SymbolID  SymbolId
	Bid       decimal.Decimal
	Ask       decimal.Decimal
}
