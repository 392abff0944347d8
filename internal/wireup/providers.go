package wireup

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/shopspring/decimal"

	backtesthttp "barterbench/internal/transport/http/backtest"

	"barterbench/internal/backtest"
	"barterbench/internal/broker"
	brcfg "barterbench/internal/config"
	"barterbench/internal/store/gormstore"
	"barterbench/internal/store/sqlite"
	"barterbench/internal/strategy"
)

// ProviderSet lists every constructor wire.Build assembles App from,
// grounded on the teacher's wire_gen.go provider chain
// (provideAppBuilder -> provideAppFromBuilder).
var ProviderSet = wire.NewSet(
	provideBacktestSettings,
	provideRegistry,
	provideConfigProvider,
	provideDefinitionStore,
	provideCatalog,
	provideOrchestrator,
	provideServer,
	wire.Struct(new(App), "Orchestrator", "Catalog", "Definitions", "Server"),
)

func provideBacktestSettings(cfg *brcfg.Config) broker.BacktestSettings {
	return broker.BacktestSettings{
		SpreadPoints:     decimal.NewFromFloat(cfg.Backtest.SpreadPoints),
		SlippagePoints:   decimal.NewFromFloat(cfg.Backtest.SlippagePoints),
		CommissionPerLot: decimal.NewFromFloat(cfg.Backtest.CommissionPerLot),
		InitialBalance:   decimal.NewFromFloat(cfg.Backtest.InitialBalance),
		AccountCurrency:  cfg.Backtest.AccountCurrency,
	}
}

func provideRegistry() *strategy.Registry {
	r := strategy.NewRegistry()
	r.RegisterDefaults()
	return r
}

func provideConfigProvider(cfg *brcfg.Config) (*strategy.FileConfigProvider, error) {
	return strategy.NewFileConfigProvider(cfg.Strategy.DefinitionsFile)
}

func provideDefinitionStore(ctx context.Context, cfg *brcfg.Config, provider *strategy.FileConfigProvider) (*gormstore.Store, error) {
	store, err := gormstore.NewStore(cfg.Store.StrategyDefinitionDB)
	if err != nil {
		return nil, fmt.Errorf("open strategy definition store: %w", err)
	}
	defs, err := provider.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load strategy definitions: %w", err)
	}
	for _, def := range defs {
		if err := store.Upsert(ctx, def); err != nil {
			return nil, fmt.Errorf("persist strategy definition %s: %w", def.Name, err)
		}
	}
	return store, nil
}

func provideCatalog(cfg *brcfg.Config) (*sqlite.Catalog, error) {
	return sqlite.NewCatalog(cfg.Store.CandleCatalogDir)
}

func provideOrchestrator(registry *strategy.Registry, catalog *sqlite.Catalog, settings broker.BacktestSettings, configs *strategy.FileConfigProvider) *backtest.Orchestrator {
	return backtest.NewOrchestrator(registry, catalog, settings, configs)
}

func provideServer(cfg *brcfg.Config, orchestrator *backtest.Orchestrator) *backtesthttp.Server {
	return backtesthttp.NewServer(cfg.App.HTTPAddr, orchestrator)
}
