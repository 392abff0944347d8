package backtest

import (
	"sort"

	"barterbench/internal/core"
)

// closedPositionPnL is one entry+exit trade pair reduced to a single P&L
// figure.
type closedPositionPnL struct {
	orderID    string
	entry      core.Trade
	exit       core.Trade
	pnl        float64
	commission float64
}

// reduceMetrics implements §4.4.1 exactly: group trades by order_id,
// derive per-position P&L, then fold into profit factor / win rate /
// equity curve / max drawdown / final balance. Grounded on
// internal/backtest/simulator.go's portfolioState.statsSummary and
// recordSnapshot peak/drawdown tracking, generalized from single-position
// bookkeeping to a closed-positions-grouped-by-order-id reduction.
func reduceMetrics(initialBalance float64, trades []core.Trade) BacktestResult {
	positions := groupIntoClosedPositions(trades)

	result := BacktestResult{
		InitialBalance: initialBalance,
		FinalBalance:   initialBalance,
	}

	var grossProfit, grossLoss float64
	var peak, maxDrawdown float64
	equity := initialBalance
	peak = initialBalance

	for _, pos := range positions {
		result.TotalTrades++
		if pos.pnl > 0 {
			result.WinningTrades++
			grossProfit += pos.pnl
		} else {
			result.LosingTrades++
			grossLoss += -pos.pnl
		}
		equity += pos.pnl
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			drawdown := (peak - equity) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	if grossLoss > 0 {
		result.ProfitFactor = grossProfit / grossLoss
	}
	if result.TotalTrades > 0 {
		result.WinRate = float64(result.WinningTrades) / float64(result.TotalTrades)
	}
	result.MaxDrawdownPercent = maxDrawdown * 100
	result.FinalBalance = equity
	result.Success = true
	return result
}

// groupIntoClosedPositions groups trades by order_id; a position exists
// when a group has >= 2 trades. The earlier-executed_at trade is the
// entry, the later is the exit.
func groupIntoClosedPositions(trades []core.Trade) []closedPositionPnL {
	byOrder := make(map[string][]core.Trade)
	order := make([]string, 0)
	for _, tr := range trades {
		if _, ok := byOrder[tr.OrderID]; !ok {
			order = append(order, tr.OrderID)
		}
		byOrder[tr.OrderID] = append(byOrder[tr.OrderID], tr)
	}

	var out []closedPositionPnL
	for _, orderID := range order {
		group := byOrder[orderID]
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].ExecutedAt < group[j].ExecutedAt })
		entry, exit := group[0], group[len(group)-1]

		var pnl float64
		entryPrice, _ := entry.Price.Float64()
		exitPrice, _ := exit.Price.Float64()
		volume, _ := entry.Volume.Decimal().Float64()
		if entry.Side == core.Buy {
			pnl = (exitPrice - entryPrice) * volume
		} else {
			pnl = (entryPrice - exitPrice) * volume
		}
		entryCommission, _ := entry.Commission.Amount.Float64()
		exitCommission, _ := exit.Commission.Amount.Float64()
		pnl -= entryCommission + exitCommission

		out = append(out, closedPositionPnL{
			orderID:    orderID,
			entry:      entry,
			exit:       exit,
			pnl:        pnl,
			commission: entryCommission + exitCommission,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].exit.ExecutedAt < out[j].exit.ExecutedAt })
	return out
}
