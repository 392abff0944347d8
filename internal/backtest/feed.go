package backtest

import (
	"context"
	"sort"

	"barterbench/internal/core"
)

// ReplayFeed is the backtest-mode MarketDataFeed: bars are loaded ahead of
// time from the external candle catalog and replayed in chronological
// order. Grounded on internal/backtest/simulator.go's candle-store-backed
// dataset loading, generalized to the engine's MarketDataFeed contract.
type ReplayFeed struct {
	bars map[core.SymbolId]map[core.Timeframe][]core.Bar
}

func NewReplayFeed() *ReplayFeed {
	return &ReplayFeed{bars: make(map[core.SymbolId]map[core.Timeframe][]core.Bar)}
}

// Load registers bars for (symbol, timeframe), sorted ascending by
// timestamp.
func (f *ReplayFeed) Load(symbol core.SymbolId, tf core.Timeframe, bars []core.Bar) {
	sorted := append([]core.Bar(nil), bars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	byTf, ok := f.bars[symbol]
	if !ok {
		byTf = make(map[core.Timeframe][]core.Bar)
		f.bars[symbol] = byTf
	}
	byTf[tf] = sorted
}

// GetHistory returns bars sorted ascending by timestamp, inclusive on both
// ends; empty on unknown pair.
func (f *ReplayFeed) GetHistory(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, from, to int64) ([]core.Bar, error) {
	byTf, ok := f.bars[symbol]
	if !ok {
		return nil, nil
	}
	all := byTf[tf]
	out := make([]core.Bar, 0, len(all))
	for _, bar := range all {
		if bar.Timestamp >= from && bar.Timestamp <= to {
			out = append(out, bar)
		}
	}
	return out, nil
}

// SubscribeBars replays the loaded bars for (symbol, tf) on a finite
// channel, closing it once exhausted or the context is cancelled.
func (f *ReplayFeed) SubscribeBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe) (<-chan core.Bar, error) {
	out := make(chan core.Bar)
	byTf := f.bars[symbol]
	bars := byTf[tf]

	go func() {
		defer close(out)
		for _, bar := range bars {
			select {
			case <-ctx.Done():
				return
			case out <- bar:
			}
		}
	}()
	return out, nil
}

// SubscribeTicks is empty in the simulated variant (bar-only execution).
func (f *ReplayFeed) SubscribeTicks(ctx context.Context, symbol core.SymbolId) (<-chan core.Tick, error) {
	out := make(chan core.Tick)
	close(out)
	return out, nil
}

// AllBars returns every loaded bar across all symbols/timeframes for the
// given timeframe, used by the orchestrator's chronological merge.
func (f *ReplayFeed) AllBars(tf core.Timeframe) []core.Bar {
	var out []core.Bar
	for _, byTf := range f.bars {
		out = append(out, byTf[tf]...)
	}
	return out
}
