package backtest

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barterbench/internal/broker"
	"barterbench/internal/core"
	"barterbench/internal/strategy"
)

// fakeCatalog is a hand-rolled in-memory CandleCatalog, grounded on the
// teacher's testify-mock-free fixture style for simple read-only
// collaborators (internal/market tests build a slice and hand it back
// directly rather than mocking the store).
type fakeCatalog struct {
	bars map[core.SymbolId][]core.Bar
}

func (f *fakeCatalog) GetBars(_ context.Context, symbol core.SymbolId, _ core.Timeframe, from, to int64) ([]core.Bar, error) {
	var out []core.Bar
	for _, b := range f.bars[symbol] {
		if b.Timestamp >= from && b.Timestamp <= to {
			out = append(out, b)
		}
	}
	return out, nil
}

func price(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func makeBars(symbol core.SymbolId, startTs int64, count int, startPrice float64) []core.Bar {
	bars := make([]core.Bar, 0, count)
	ts := startTs
	p := startPrice
	for i := 0; i < count; i++ {
		bars = append(bars, core.Bar{
			SymbolID:  symbol,
			Timeframe: core.M5,
			Timestamp: ts,
			Open:      price(p),
			High:      price(p + 0.0010),
			Low:       price(p - 0.0010),
			Close:     price(p),
			Volume:    price(100),
		})
		ts += 300
		p += 0.0005
	}
	return bars
}

func newTestOrchestrator(catalog CandleCatalog) *Orchestrator {
	registry := strategy.NewRegistry()
	registry.RegisterDefaults()
	return NewOrchestrator(registry, catalog, broker.DefaultBacktestSettings(), nil)
}

// stubConfigProvider is a hand-rolled strategy.ConfigProvider fixture that
// always resolves to a single fixed definition, regardless of the name
// asked for.
type stubConfigProvider struct {
	def core.StrategyDefinition
}

func (s stubConfigProvider) LoadAll() ([]core.StrategyDefinition, error) {
	return []core.StrategyDefinition{s.def}, nil
}

func (s stubConfigProvider) LoadByName(name string) (*core.StrategyDefinition, error) {
	if !strings.EqualFold(name, s.def.Name) {
		return nil, nil
	}
	def := s.def
	return &def, nil
}

func TestOrchestratorExecuteBuyOnFirstBarProducesResult(t *testing.T) {
	const symbol = core.SymbolId(1)
	catalog := &fakeCatalog{bars: map[core.SymbolId][]core.Bar{
		symbol: makeBars(symbol, 1_000, 20, 1.1000),
	}}
	orchestrator := newTestOrchestrator(catalog)

	job := BacktestJob{
		JobID:        "job-1",
		StrategyName: "BuyOnFirstBar",
		Symbols:      []core.SymbolId{symbol},
		StartDate:    1_000,
		EndDate:      1_000 + 20*300,
	}

	result := orchestrator.Execute(context.Background(), job)

	require.True(t, result.Success, "expected successful run, got error: %s", result.Error)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, 10000.0, result.InitialBalance)
	assert.GreaterOrEqual(t, result.CompletedAt, job.StartDate)

	// The rising price series must walk the position into its take-profit,
	// closing it and producing exactly one grouped entry+exit trade pair.
	// Entry fills at 1.1005+0.0004 spread and exits at the 20-pip TP 1.1020:
	// the 0.0011 gain on 0.01 lots is smaller than the 0.06 round-trip
	// commission, so the closed position is a net loser.
	require.Equal(t, 1, result.TotalTrades, "entry and exit trades must share an order id so metrics group them into a closed position")
	assert.Equal(t, 1, result.LosingTrades)
	assert.InDelta(t, result.InitialBalance+0.000011-0.06, result.FinalBalance, 1e-6)
}

func TestOrchestratorExecuteUnknownStrategyFails(t *testing.T) {
	const symbol = core.SymbolId(1)
	catalog := &fakeCatalog{bars: map[core.SymbolId][]core.Bar{
		symbol: makeBars(symbol, 1_000, 5, 1.1000),
	}}
	orchestrator := newTestOrchestrator(catalog)

	result := orchestrator.Execute(context.Background(), BacktestJob{
		JobID:        "job-2",
		StrategyName: "DoesNotExist",
		Symbols:      []core.SymbolId{symbol},
		StartDate:    1_000,
		EndDate:      1_000 + 5*300,
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown strategy")
}

func TestOrchestratorExecuteCancelledBeforeFirstBar(t *testing.T) {
	const symbol = core.SymbolId(1)
	catalog := &fakeCatalog{bars: map[core.SymbolId][]core.Bar{
		symbol: makeBars(symbol, 1_000, 5, 1.1000),
	}}
	orchestrator := newTestOrchestrator(catalog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := orchestrator.Execute(ctx, BacktestJob{
		JobID:        "job-3",
		StrategyName: "BuyOnFirstBar",
		Symbols:      []core.SymbolId{symbol},
		StartDate:    1_000,
		EndDate:      1_000 + 5*300,
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "cancelled")
}

// TestOrchestratorExecuteAppliesConfiguredRiskPolicies proves a job is not
// stuck on BuyOnFirstBar's hardcoded 10/20 pip defaults: a ConfigProvider
// resolving a risk-percent-sized, risk-reward take-profit definition must
// change the size and distance of the resulting position.
func TestOrchestratorExecuteAppliesConfiguredRiskPolicies(t *testing.T) {
	const symbol = core.SymbolId(1)
	catalog := &fakeCatalog{bars: map[core.SymbolId][]core.Bar{
		symbol: makeBars(symbol, 1_000, 20, 1.1000),
	}}

	registry := strategy.NewRegistry()
	registry.RegisterDefaults()

	configs := stubConfigProvider{def: core.StrategyDefinition{
		Name:          "BuyOnFirstBar",
		MainTimeframe: core.M5,
		Risk: core.StrategyRisk{
			StopLoss:       core.RiskBlock{Type: "fixed_pips", Parameters: map[string]interface{}{"pips": 5.0}},
			TakeProfit:     core.RiskBlock{Type: "risk_reward", Parameters: map[string]interface{}{"ratio": 2.0}},
			PositionSizing: core.RiskBlock{Type: "risk_percent", Parameters: map[string]interface{}{"percent": 1.0, "pip_value": 10.0}},
		},
	}}

	orchestrator := NewOrchestrator(registry, catalog, broker.DefaultBacktestSettings(), configs)

	result := orchestrator.Execute(context.Background(), BacktestJob{
		JobID:        "job-risk",
		StrategyName: "BuyOnFirstBar",
		Symbols:      []core.SymbolId{symbol},
		StartDate:    1_000,
		EndDate:      1_000 + 20*300,
	})

	require.True(t, result.Success, "expected successful run, got error: %s", result.Error)
	require.Equal(t, 1, result.TotalTrades, "the risk-reward TP (10 pips) must still close the position within the rising price series")
	// 1% of 10000 over 5 pips at 10 per pip sizes 2 lots; entry 1.1009 exits
	// at the 10-pip TP 1.1010, and the 12 round-trip commission outweighs it.
	assert.Equal(t, 1, result.LosingTrades)
	assert.InDelta(t, result.InitialBalance+0.0002-12, result.FinalBalance, 1e-6)
}

func TestOrchestratorExecuteMergesMultipleSymbolsChronologically(t *testing.T) {
	const symbolA, symbolB = core.SymbolId(1), core.SymbolId(2)
	catalog := &fakeCatalog{bars: map[core.SymbolId][]core.Bar{
		symbolA: makeBars(symbolA, 1_000, 10, 1.1000),
		symbolB: makeBars(symbolB, 1_150, 10, 1.2000),
	}}
	orchestrator := newTestOrchestrator(catalog)

	result := orchestrator.Execute(context.Background(), BacktestJob{
		JobID:        "job-4",
		StrategyName: "BuyOnFirstBar",
		Symbols:      []core.SymbolId{symbolA, symbolB},
		StartDate:    1_000,
		EndDate:      1_000 + 10*300 + 150,
	})

	require.True(t, result.Success, "expected successful run, got error: %s", result.Error)
}
