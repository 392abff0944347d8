package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"barterbench/internal/core"
	"barterbench/internal/logger"
)

const (
	defaultVolume = 0.01
	pipSize       = 0.0001
)

// Engine is the bar-driven trading core, reused unchanged across live,
// paper and backtest modes by swapping its four collaborators. Grounded on
// internal/backtest/simulator.go's simRunner.Run per-bar loop, generalized
// from a single-symbol chronological-candle loop into a symbol × timeframe
// rolling cache with deterministic strategy dispatch.
type Engine struct {
	cache      *barCache
	strategies []StrategyInstance

	feed      MarketDataFeed
	execution OrderExecution
	clock     Clock
	sink      EventSink
}

func New(feed MarketDataFeed, execution OrderExecution, clock Clock, sink EventSink) *Engine {
	return &Engine{
		cache:     newBarCache(),
		feed:      feed,
		execution: execution,
		clock:     clock,
		sink:      sink,
	}
}

// RegisterStrategy appends s to the active strategy list.
func (e *Engine) RegisterStrategy(s StrategyInstance) {
	e.strategies = append(e.strategies, s)
}

// CachedBarCount is an observability hook used by tests.
func (e *Engine) CachedBarCount(symbol core.SymbolId, tf core.Timeframe) int {
	return e.cache.count(symbol, tf)
}

// OnBarClosed is the engine's sole ingress point. Updates the cache, then
// evaluates every registered strategy whose main timeframe matches the
// bar's timeframe. Cache updates never fail; order-placement failures are
// converted into status events and never propagated out of this call.
func (e *Engine) OnBarClosed(ctx context.Context, bar core.Bar) error {
	e.cache.append(bar)

	for _, strategy := range e.strategies {
		if strategy.MainTimeframe() != bar.Timeframe {
			continue
		}
		e.evaluateStrategy(ctx, strategy, bar)
	}
	return nil
}

func (e *Engine) evaluateStrategy(ctx context.Context, strategy StrategyInstance, bar core.Bar) {
	signalCtx, ok := e.buildContext(strategy, bar)
	if !ok {
		// Insufficient history: a silent per-bar skip, never surfaced.
		return
	}

	result, err := strategy.Evaluate(signalCtx)
	if err != nil {
		logger.Warnf("[engine] strategy %s evaluation failed: %v", strategy.Name(), err)
		return
	}
	if result.Signal == core.SignalNone || result.Signal == "" {
		return
	}

	e.placeOrderFromSignal(strategy, bar, result)
}

func (e *Engine) buildContext(strategy StrategyInstance, bar core.Bar) (core.SignalContext, bool) {
	marketData := make(map[core.Timeframe][]core.Bar, len(strategy.RequiredTimeframes()))
	for tf, count := range strategy.RequiredTimeframes() {
		bars, ok := e.cache.lastN(bar.SymbolID, tf, count)
		if !ok {
			return core.SignalContext{}, false
		}
		marketData[tf] = bars
	}

	return core.SignalContext{
		SymbolID:       bar.SymbolID,
		MarketData:     marketData,
		AccountBalance: e.accountBalance(),
		Timestamp:      e.clock.Now(),
	}, true
}

// accountBalance sources the running balance from the order execution
// collaborator when it exposes one (the simulated executor does, via the
// BalanceSource interface below), generalizing the teacher's
// portfolioState.balance running ledger (Open Question decision 3).
func (e *Engine) accountBalance() float64 {
	if src, ok := e.execution.(BalanceSource); ok {
		return src.AccountBalance()
	}
	return 0
}

// BalanceSource is implemented by order-execution collaborators that can
// report a running account balance for risk-percent sizing.
type BalanceSource interface {
	AccountBalance() float64
}

func (e *Engine) placeOrderFromSignal(strategy StrategyInstance, bar core.Bar, result core.SignalResult) {
	side := core.Buy
	if result.Signal == core.SignalSell {
		side = core.Sell
	}

	volume := defaultVolume
	if result.SuggestedVolume != nil {
		volume = *result.SuggestedVolume
	}
	qty, err := core.QuantityFromFloat(volume)
	if err != nil {
		logger.Warnf("[engine] strategy %s produced invalid volume: %v", strategy.Name(), err)
		e.sink.PublishEngineStatus(fmt.Sprintf("Order failed: %v", err))
		return
	}

	stopLoss, takeProfit := pipsToPrices(side, bar.Close, result)

	clientOrderID := fmt.Sprintf("%s-%d", strategy.Name(), e.clock.UnixSeconds())

	order, err := e.execution.PlaceOrder(bar.SymbolID, side, core.Market, qty, nil, stopLoss, takeProfit, clientOrderID)
	if err != nil {
		logger.Warnf("[engine] order placement failed: %v", err)
		e.sink.PublishEngineStatus(fmt.Sprintf("Order failed: %v", err))
		return
	}

	e.sink.PublishOrder(order)
	e.sink.PublishEngineStatus(fmt.Sprintf("Order placed: %s %s @ %d", side, qty, bar.SymbolID))
}

// pipsToPrices converts suggested_stop_loss_pips/suggested_take_profit_pips
// into absolute prices using the fixed instrument pip size and the
// triggering bar's close as the entry estimate (Open Question decision 1:
// pip offsets, not absolute price levels).
func pipsToPrices(side core.Side, entryEstimate decimal.Decimal, result core.SignalResult) (*decimal.Decimal, *decimal.Decimal) {
	pip := decimal.NewFromFloat(pipSize)

	var sl, tp *decimal.Decimal
	if result.SuggestedStopLossPips != nil {
		offset := pip.Mul(decimal.NewFromFloat(*result.SuggestedStopLossPips))
		var v decimal.Decimal
		if side == core.Buy {
			v = entryEstimate.Sub(offset)
		} else {
			v = entryEstimate.Add(offset)
		}
		sl = &v
	}
	if result.SuggestedTakeProfitPips != nil {
		offset := pip.Mul(decimal.NewFromFloat(*result.SuggestedTakeProfitPips))
		var v decimal.Decimal
		if side == core.Buy {
			v = entryEstimate.Add(offset)
		} else {
			v = entryEstimate.Sub(offset)
		}
		tp = &v
	}
	return sl, tp
}
