// Package engine implements the bar-driven trading engine: a rolling
// multi-timeframe bar cache, strategy dispatch on main-timeframe bar close,
// and signal-to-order translation. The same Engine is reused across live,
// paper and backtest modes by swapping these four collaborators.
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"barterbench/internal/core"
)

// MarketDataFeed is consumed by the engine and the orchestrator.
type MarketDataFeed interface {
	SubscribeBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe) (<-chan core.Bar, error)
	SubscribeTicks(ctx context.Context, symbol core.SymbolId) (<-chan core.Tick, error)
	GetHistory(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, from, to int64) ([]core.Bar, error)
}

// OrderExecution is consumed by the engine. The simulated variant in
// internal/broker additionally exposes ProcessBar and the read-only
// collections described in §6, accessed via a type assertion where needed.
type OrderExecution interface {
	PlaceOrder(
		symbol core.SymbolId,
		side core.Side,
		orderType core.OrderType,
		volume core.Quantity,
		price, stopLoss, takeProfit *decimal.Decimal,
		clientOrderID string,
	) (core.Order, error)
	ModifyOrder(orderID string, stopLoss, takeProfit *decimal.Decimal) (core.Order, error)
	CancelOrder(orderID string)
	ClosePosition(positionID string)
	GetPositions() []core.Position
}

// Clock exposes a monotonically non-decreasing now. The simulated clock
// adds AdvanceTo/Reset, accessible only to the orchestrator that owns it.
type Clock interface {
	Now() int64
	UnixSeconds() int64
}

// EventSink is a fire-and-forget fan-out of trade/order/status events. The
// backtest orchestrator uses a null sink; the live service uses a
// bus-backed sink.
type EventSink interface {
	PublishTrade(core.Trade)
	PublishOrder(core.Order)
	PublishPosition(core.Position)
	PublishEngineStatus(message string)
}
