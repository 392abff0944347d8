package core

import "github.com/shopspring/decimal"

// Side is the direction of an order or position.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType. Market is the only fully-specified type in the core; Limit and
// Stop share the structure but are out of scope for the simulator.
type OrderType string

const (
	Market OrderType = "Market"
	Limit  OrderType = "Limit"
	Stop   OrderType = "Stop"
)

// OrderStatus, the lifecycle enum grounded on
// other_examples/10Hr-Tradovate-Execution-Engine__order.go's plain
// string-enum idiom.
type OrderStatus string

const (
	OrderPending         OrderStatus = "Pending"
	OrderFilled          OrderStatus = "Filled"
	OrderPartiallyFilled OrderStatus = "PartiallyFilled"
	OrderCancelled       OrderStatus = "Cancelled"
	OrderRejected        OrderStatus = "Rejected"
)

// Order is the engine-facing view of a placed order.
type Order struct {
	OrderID       string
	SymbolID      SymbolId
	Side          Side
	Type          OrderType
	Volume        Quantity
	Price         *decimal.Decimal
	StopLoss      *decimal.Decimal
	TakeProfit    *decimal.Decimal
	Status        OrderStatus
	CreatedAt     int64
	ClientOrderID string
}

// PendingOrder is internal to the simulated executor: an order not yet
// filled, living from place until the next bar's open for its symbol.
type PendingOrder struct {
	OrderID       string
	SymbolID      SymbolId
	Side          Side
	Type          OrderType
	Volume        Quantity
	Price         *decimal.Decimal
	StopLoss      *decimal.Decimal
	TakeProfit    *decimal.Decimal
	ClientOrderID string
	CreatedAt     int64
}
