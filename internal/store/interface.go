// Package store declares the persistence contracts the core borrows for
// the lifetime of a run and returns when done (§5 "resource acquisition").
// Concrete adapters live in sibling packages (sqlite, gormstore); neither
// the engine nor the orchestrator imports them directly.
package store

import (
	"context"

	"barterbench/internal/core"
)

// StrategyDefinitionRepository persists strategy definitions keyed by
// name, independent of whichever strategy.ConfigProvider reads them at
// runtime. A gorm-backed implementation lives in gormstore.Store; a
// viper+YAML one is strategy.FileConfigProvider, which never touches this
// interface.
type StrategyDefinitionRepository interface {
	Upsert(ctx context.Context, def core.StrategyDefinition) error
	FindByName(ctx context.Context, name string) (*core.StrategyDefinition, error)
	ListAll(ctx context.Context) ([]core.StrategyDefinition, error)
}

// CandleCatalog persists OHLC history, one adapter per storage engine.
// internal/store/sqlite.Catalog is the reference implementation; it also
// satisfies internal/backtest.CandleCatalog structurally.
type CandleCatalog interface {
	InsertBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, bars []core.Bar) error
	GetBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, from, to int64) ([]core.Bar, error)
}
