package backtest

import (
	"context"
	"fmt"
	"sort"

	"barterbench/internal/broker"
	"barterbench/internal/core"
	"barterbench/internal/engine"
	"barterbench/internal/logger"
	"barterbench/internal/strategy"
)

// CandleCatalog is the external bar-history source the orchestrator
// borrows for the duration of a run (§5 "resource acquisition" — owned
// externally, never held long-lived by the core).
type CandleCatalog interface {
	GetBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, from, to int64) ([]core.Bar, error)
}

// Orchestrator drives the engine and simulated executor deterministically
// and reduces the resulting closed positions into metrics. Grounded on
// internal/backtest/simulator.go's Simulator/simRunner.Run.
type Orchestrator struct {
	registry *strategy.Registry
	catalog  CandleCatalog
	settings broker.BacktestSettings
	configs  strategy.ConfigProvider
}

// NewOrchestrator wires the collaborators an Execute run needs. configs may
// be nil, in which case every job falls back to a bare definition carrying
// only the job's name/version/M5 main timeframe (no risk composition, no
// required-timeframe or parameter overrides).
func NewOrchestrator(registry *strategy.Registry, catalog CandleCatalog, settings broker.BacktestSettings, configs strategy.ConfigProvider) *Orchestrator {
	return &Orchestrator{registry: registry, catalog: catalog, settings: settings, configs: configs}
}

// Execute implements §4.4 steps 1-6. It never returns a non-nil error;
// failures are folded into an unsuccessful BacktestResult, mirroring the
// teacher's runLoop "update run status to Failed, don't propagate" idiom.
func (o *Orchestrator) Execute(ctx context.Context, job BacktestJob) BacktestResult {
	def, err := o.resolveDefinition(job)
	if err != nil {
		return unsuccessfulResult(job.JobID, err)
	}
	strategyInstance, err := o.registry.CreateByName(job.StrategyName, def)
	if err != nil {
		return unsuccessfulResult(job.JobID, fmt.Errorf("resolve strategy: %w", err))
	}
	if strategyInstance == nil {
		return unsuccessfulResult(job.JobID, fmt.Errorf("%w: %s", core.ErrUnknownStrategy, job.StrategyName))
	}

	clock := NewSimulatedClock(job.StartDate)
	executor := broker.NewSimulatedExecutor(o.settings, clock)
	feed := NewReplayFeed()
	eng := engine.New(feed, executor, clock, NullEventSink{})
	eng.RegisterStrategy(strategyInstance)

	mainTf := strategyInstance.MainTimeframe()
	for _, symbol := range job.Symbols {
		bars, err := o.catalog.GetBars(ctx, symbol, mainTf, job.StartDate, job.EndDate)
		if err != nil {
			return unsuccessfulResult(job.JobID, fmt.Errorf("%w: fetch bars for %d: %v", core.ErrExternalFailure, symbol, err))
		}
		feed.Load(symbol, mainTf, bars)
	}

	merged := mergeChronologically(feed.AllBars(mainTf))

	for _, bar := range merged {
		select {
		case <-ctx.Done():
			return unsuccessfulResult(job.JobID, fmt.Errorf("%w: Backtest cancelled", core.ErrCancellationRequested))
		default:
		}

		if err := clock.AdvanceTo(bar.Timestamp); err != nil {
			return unsuccessfulResult(job.JobID, err)
		}
		if err := executor.ProcessBar(bar); err != nil {
			return unsuccessfulResult(job.JobID, err)
		}
		if err := eng.OnBarClosed(ctx, bar); err != nil {
			logger.Warnf("[backtest] run %s: on_bar_closed error: %v", job.JobID, err)
		}
	}

	result := reduceMetrics(initialBalanceFloat(o.settings), executor.Trades())
	result.JobID = job.JobID
	result.CompletedAt = clock.Now()
	return result
}

// resolveDefinition looks up the job's real StrategyDefinition (risk
// block, required timeframes, parameters, symbols) from the configured
// ConfigProvider, honoring "latest version wins" the way the provider
// itself resolves it. Falls back to a bare definition when no provider is
// wired or the name is unknown there, so a strategy with no configured
// risk block still runs on its own hardcoded defaults.
func (o *Orchestrator) resolveDefinition(job BacktestJob) (core.StrategyDefinition, error) {
	fallback := core.StrategyDefinition{Name: job.StrategyName, Version: job.StrategyVersion, MainTimeframe: core.M5}
	if o.configs == nil {
		return fallback, nil
	}
	def, err := o.configs.LoadByName(job.StrategyName)
	if err != nil {
		return core.StrategyDefinition{}, fmt.Errorf("resolve strategy definition: %w", err)
	}
	if def == nil {
		return fallback, nil
	}
	return *def, nil
}

func initialBalanceFloat(settings broker.BacktestSettings) float64 {
	f, _ := settings.InitialBalance.Float64()
	return f
}

// mergeChronologically merges bars across symbols, stable by timestamp
// then symbol id, generalized from internal/backtest/simulator.go's
// single-timeframe tfCursors advance-while-loop to N symbols.
func mergeChronologically(bars []core.Bar) []core.Bar {
	out := append([]core.Bar(nil), bars...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].SymbolID < out[j].SymbolID
	})
	return out
}
