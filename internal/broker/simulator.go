package broker

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"barterbench/internal/core"
	"barterbench/internal/logger"
)

// Clock is the capability the simulated executor observes for "now". Only
// the orchestrator is expected to advance it; the executor only reads it.
type Clock interface {
	Now() int64
}

// SimulatedExecutor is the deterministic, bar-level broker simulation:
// T+1 execution, spread, adverse slippage on stops, per-lot commission.
// Grounded on internal/backtest/simulator.go's handleOpen/handleClose/
// recordSnapshot bookkeeping, generalized from "single position, close on
// opposite signal" to the spec's pending-order + SL/TP state machine.
type SimulatedExecutor struct {
	settings BacktestSettings
	clock    Clock

	pendingOrders   []core.PendingOrder
	openPositions   []core.Position
	closedPositions []core.Position
	trades          []core.Trade
}

func NewSimulatedExecutor(settings BacktestSettings, clock Clock) *SimulatedExecutor {
	return &SimulatedExecutor{settings: settings, clock: clock}
}

// PlaceOrder constructs a PendingOrder with a freshly generated id, appends
// it, and returns an Order with status Pending. No fill occurs synchronously.
func (e *SimulatedExecutor) PlaceOrder(
	symbolID core.SymbolId,
	side core.Side,
	orderType core.OrderType,
	volume core.Quantity,
	price, stopLoss, takeProfit *decimal.Decimal,
	clientOrderID string,
) (core.Order, error) {
	if volume.IsZero() {
		return core.Order{}, fmt.Errorf("%w: zero volume order", core.ErrInvalidArgument)
	}
	id := uuid.NewString()
	now := e.clock.Now()

	e.pendingOrders = append(e.pendingOrders, core.PendingOrder{
		OrderID:       id,
		SymbolID:      symbolID,
		Side:          side,
		Type:          orderType,
		Volume:        volume,
		Price:         price,
		StopLoss:      stopLoss,
		TakeProfit:    takeProfit,
		ClientOrderID: clientOrderID,
		CreatedAt:     now,
	})

	return core.Order{
		OrderID:       id,
		SymbolID:      symbolID,
		Side:          side,
		Type:          orderType,
		Volume:        volume,
		Price:         price,
		StopLoss:      stopLoss,
		TakeProfit:    takeProfit,
		Status:        core.OrderPending,
		CreatedAt:     now,
		ClientOrderID: clientOrderID,
	}, nil
}

// ProcessBar runs the two mandatory phases, in this exact order: fill
// pending orders at the bar's open, then evaluate SL/TP against the bar's
// range. Called by the orchestrator before engine dispatch.
func (e *SimulatedExecutor) ProcessBar(bar core.Bar) error {
	e.fillPendingOrders(bar)
	e.evaluateStopsAndTargets(bar)
	return nil
}

func (e *SimulatedExecutor) fillPendingOrders(bar core.Bar) {
	remaining := e.pendingOrders[:0]
	for _, pending := range e.pendingOrders {
		if pending.SymbolID != bar.SymbolID {
			remaining = append(remaining, pending)
			continue
		}

		fillPrice := bar.Open
		if pending.Side == core.Buy {
			fillPrice = fillPrice.Add(e.settings.SpreadPoints)
		}

		position := core.Position{
			PositionID:        pending.OrderID,
			SymbolID:          pending.SymbolID,
			Side:              pending.Side,
			Volume:            pending.Volume,
			EntryPrice:        fillPrice,
			StopLoss:          pending.StopLoss,
			TakeProfit:        pending.TakeProfit,
			EntryBarTimestamp: bar.Timestamp,
			OpenedAt:          e.clock.Now(),
		}
		e.openPositions = append(e.openPositions, position)

		commission := pending.Volume.Decimal().Mul(e.settings.CommissionPerLot)
		e.trades = append(e.trades, core.Trade{
			TradeID:    uuid.NewString(),
			OrderID:    pending.OrderID,
			SymbolID:   pending.SymbolID,
			Side:       pending.Side,
			Volume:     pending.Volume,
			Price:      fillPrice,
			Commission: core.NewMoney(commission, e.settings.AccountCurrency),
			ExecutedAt: e.clock.Now(),
		})

		logger.Debugf("[broker] filled %s %s %s @ %s", pending.Side, pending.Volume, pending.OrderID, fillPrice.String())
	}
	e.pendingOrders = remaining
}

func (e *SimulatedExecutor) evaluateStopsAndTargets(bar core.Bar) {
	spread := e.settings.SpreadPoints
	slippage := e.settings.SlippagePoints

	remaining := e.openPositions[:0]
	for _, pos := range e.openPositions {
		if pos.SymbolID != bar.SymbolID {
			remaining = append(remaining, pos)
			continue
		}
		// T+1: exits must not trigger on the entry bar even if the range
		// covers the stop.
		if bar.Timestamp <= pos.EntryBarTimestamp {
			remaining = append(remaining, pos)
			continue
		}

		closed, exitPrice, reason := e.checkExit(pos, bar, spread, slippage)
		if !closed {
			remaining = append(remaining, pos)
			continue
		}

		e.closedPositions = append(e.closedPositions, pos)
		commission := pos.Volume.Decimal().Mul(e.settings.CommissionPerLot)
		e.trades = append(e.trades, core.Trade{
			TradeID:    uuid.NewString(),
			OrderID:    pos.PositionID,
			SymbolID:   pos.SymbolID,
			Side:       pos.Side.Opposite(),
			Volume:     pos.Volume,
			Price:      exitPrice,
			Commission: core.NewMoney(commission, e.settings.AccountCurrency),
			ExecutedAt: e.clock.Now(),
		})
		logger.Debugf("[broker] closed position %s reason=%s @ %s", pos.PositionID, reason, exitPrice.String())
	}
	e.openPositions = remaining
}

// checkExit implements §4.2.2 phase 2: SL is checked before TP, and a bar
// range that covers both closes the position on the stop (no TP check).
func (e *SimulatedExecutor) checkExit(pos core.Position, bar core.Bar, spread, slippage decimal.Decimal) (bool, decimal.Decimal, string) {
	if pos.Side == core.Buy {
		bidLow := bar.Low.Sub(spread)
		bidHigh := bar.High.Sub(spread)

		if pos.StopLoss != nil && stopLossHit(core.Buy, bidLow, *pos.StopLoss) {
			return true, pos.StopLoss.Sub(slippage), "SL"
		}
		if pos.TakeProfit != nil && takeProfitHit(core.Buy, bidHigh, *pos.TakeProfit) {
			return true, *pos.TakeProfit, "TP"
		}
		return false, decimal.Zero, ""
	}

	askLow := bar.Low.Add(spread)
	askHigh := bar.High.Add(spread)

	if pos.StopLoss != nil && stopLossHit(core.Sell, askHigh, *pos.StopLoss) {
		return true, pos.StopLoss.Add(slippage), "SL"
	}
	if pos.TakeProfit != nil && takeProfitHit(core.Sell, askLow, *pos.TakeProfit) {
		return true, *pos.TakeProfit, "TP"
	}
	return false, decimal.Zero, ""
}

// ModifyOrder mutates only pending orders. Missing parameters leave
// existing values untouched. Positions are never touched here: see
// ModifyPositionStopLoss/ModifyPositionTakeProfit.
func (e *SimulatedExecutor) ModifyOrder(orderID string, stopLoss, takeProfit *decimal.Decimal) (core.Order, error) {
	for i := range e.pendingOrders {
		p := &e.pendingOrders[i]
		if p.OrderID != orderID {
			continue
		}
		if stopLoss != nil {
			p.StopLoss = stopLoss
		}
		if takeProfit != nil {
			p.TakeProfit = takeProfit
		}
		return core.Order{
			OrderID:       p.OrderID,
			SymbolID:      p.SymbolID,
			Side:          p.Side,
			Type:          p.Type,
			Volume:        p.Volume,
			Price:         p.Price,
			StopLoss:      p.StopLoss,
			TakeProfit:    p.TakeProfit,
			Status:        core.OrderPending,
			CreatedAt:     p.CreatedAt,
			ClientOrderID: p.ClientOrderID,
		}, nil
	}
	return core.Order{}, fmt.Errorf("%w: unknown pending order %s", core.ErrInvalidArgument, orderID)
}

// ModifyPositionStopLoss and ModifyPositionTakeProfit are distinct,
// explicitly-named operations on open positions (Open Question decision 2
// in the design notes): modify_order never reaches into open positions.
func (e *SimulatedExecutor) ModifyPositionStopLoss(positionID string, stopLoss decimal.Decimal) error {
	for i := range e.openPositions {
		if e.openPositions[i].PositionID == positionID {
			e.openPositions[i].StopLoss = &stopLoss
			return nil
		}
	}
	return fmt.Errorf("%w: unknown position %s", core.ErrInvalidArgument, positionID)
}

func (e *SimulatedExecutor) ModifyPositionTakeProfit(positionID string, takeProfit decimal.Decimal) error {
	for i := range e.openPositions {
		if e.openPositions[i].PositionID == positionID {
			e.openPositions[i].TakeProfit = &takeProfit
			return nil
		}
	}
	return fmt.Errorf("%w: unknown position %s", core.ErrInvalidArgument, positionID)
}

// CancelOrder removes a pending order. Idempotent on unknown ids.
func (e *SimulatedExecutor) CancelOrder(orderID string) {
	remaining := e.pendingOrders[:0]
	for _, p := range e.pendingOrders {
		if p.OrderID != orderID {
			remaining = append(remaining, p)
		}
	}
	e.pendingOrders = remaining
}

// ClosePosition moves a position from open to closed with no synthetic
// trade record; the flat close is attributed to an out-of-band decision.
// Idempotent on unknown ids.
func (e *SimulatedExecutor) ClosePosition(positionID string) {
	remaining := e.openPositions[:0]
	for _, p := range e.openPositions {
		if p.PositionID == positionID {
			e.closedPositions = append(e.closedPositions, p)
			continue
		}
		remaining = append(remaining, p)
	}
	e.openPositions = remaining
}

func (e *SimulatedExecutor) GetPositions() []core.Position {
	out := make([]core.Position, len(e.openPositions))
	copy(out, e.openPositions)
	return out
}

func (e *SimulatedExecutor) ClosedPositions() []core.Position {
	out := make([]core.Position, len(e.closedPositions))
	copy(out, e.closedPositions)
	return out
}

func (e *SimulatedExecutor) Trades() []core.Trade {
	out := make([]core.Trade, len(e.trades))
	copy(out, e.trades)
	return out
}

func (e *SimulatedExecutor) PendingOrders() []core.PendingOrder {
	out := make([]core.PendingOrder, len(e.pendingOrders))
	copy(out, e.pendingOrders)
	return out
}

// AccountBalance sources the running balance from closed-position P&L
// rather than a hard-coded constant (Open Question decision 3), so
// RiskPercentPositionSizing sizes against the true running balance. This
// generalizes the teacher's portfolioState.balance running ledger in
// simulator.go, which advances on every close.
func (e *SimulatedExecutor) AccountBalance() float64 {
	balance, _ := e.settings.InitialBalance.Float64()
	byOrder := make(map[string][]core.Trade)
	for _, tr := range e.trades {
		byOrder[tr.OrderID] = append(byOrder[tr.OrderID], tr)
	}
	for _, group := range byOrder {
		if len(group) < 2 {
			continue
		}
		entry, exit := group[0], group[len(group)-1]
		entryPrice, _ := entry.Price.Float64()
		exitPrice, _ := exit.Price.Float64()
		volume, _ := entry.Volume.Decimal().Float64()
		var pnl float64
		if entry.Side == core.Buy {
			pnl = (exitPrice - entryPrice) * volume
		} else {
			pnl = (entryPrice - exitPrice) * volume
		}
		entryCommission, _ := entry.Commission.Amount.Float64()
		exitCommission, _ := exit.Commission.Amount.Float64()
		balance += pnl - entryCommission - exitCommission
	}
	return balance
}
