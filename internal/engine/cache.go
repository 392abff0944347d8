package engine

import "barterbench/internal/core"

// maxCachedBars is the FIFO cap per (symbol, timeframe), property 3 of the
// testable-properties list.
const maxCachedBars = 1000

// barCache is the rolling per-(symbol, timeframe) bar window. Grounded on
// internal/backtest/simulator.go's tfCursors bookkeeping, generalized from
// a single-symbol cursor into a capped, deduplicated multi-symbol store.
type barCache struct {
	bySymbol map[core.SymbolId]map[core.Timeframe][]core.Bar
}

func newBarCache() *barCache {
	return &barCache{bySymbol: make(map[core.SymbolId]map[core.Timeframe][]core.Bar)}
}

// append adds bar if its timestamp is strictly greater than the last stored
// bar's timestamp for this (symbol, timeframe); otherwise it is silently
// dropped. Returns true if the bar was appended.
func (c *barCache) append(bar core.Bar) bool {
	byTf, ok := c.bySymbol[bar.SymbolID]
	if !ok {
		byTf = make(map[core.Timeframe][]core.Bar)
		c.bySymbol[bar.SymbolID] = byTf
	}
	series := byTf[bar.Timeframe]
	if len(series) > 0 && bar.Timestamp <= series[len(series)-1].Timestamp {
		return false
	}
	series = append(series, bar)
	if len(series) > maxCachedBars {
		series = series[len(series)-maxCachedBars:]
	}
	byTf[bar.Timeframe] = series
	return true
}

// lastN returns the last count bars in chronological order, or false if
// fewer than count bars are cached.
func (c *barCache) lastN(symbol core.SymbolId, tf core.Timeframe, count int) ([]core.Bar, bool) {
	byTf, ok := c.bySymbol[symbol]
	if !ok {
		return nil, false
	}
	series := byTf[tf]
	if len(series) < count {
		return nil, false
	}
	window := series[len(series)-count:]
	out := make([]core.Bar, len(window))
	copy(out, window)
	return out, true
}

func (c *barCache) count(symbol core.SymbolId, tf core.Timeframe) int {
	byTf, ok := c.bySymbol[symbol]
	if !ok {
		return 0
	}
	return len(byTf[tf])
}
