package core

import "github.com/shopspring/decimal"

// Position is an open or closed holding. entry_bar_timestamp is the sole
// input to the T+1 rule (§4.2 of the engine's execution design).
type Position struct {
	PositionID        string
	SymbolID          SymbolId
	Side              Side
	Volume            Quantity
	EntryPrice        decimal.Decimal
	StopLoss          *decimal.Decimal
	TakeProfit        *decimal.Decimal
	EntryBarTimestamp int64
	OpenedAt          int64
	StrategyName      string
}

// Trade is an immutable record of a fill or close. Closing trades carry the
// opposite side of the original order and link via order_id = position_id
// (the closing-trade linkage convention: option (a), see DESIGN.md).
type Trade struct {
	TradeID    string
	OrderID    string
	SymbolID   SymbolId
	Side       Side
	Volume     Quantity
	Price      decimal.Decimal
	Commission Money
	ExecutedAt int64
}

// Portfolio is an aggregated, non-authoritative view; during a backtest P&L
// is derived from closed positions at reduction time, not from this struct.
type Portfolio struct {
	AccountID      string
	Balance        decimal.Decimal
	Equity         decimal.Decimal
	Margin         decimal.Decimal
	FreeMargin     decimal.Decimal
	OpenPositions  []Position
}
