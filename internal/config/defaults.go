package config

import "strings"

const (
	defaultAppEnv      = "dev"
	defaultAppLogLevel = "info"
	defaultAppHTTPAddr = ":8080"
	defaultAppLogPath  = "/data/logs/backtestctl.log"

	defaultSpreadPoints     = 0.0004
	defaultSlippagePoints   = 0.0001
	defaultCommissionPerLot = 3.0
	defaultInitialBalance   = 10000.0
	defaultAccountCurrency  = "USD"
	defaultMaxCachedBars    = 1000

	defaultDefinitionsFile = "configs/strategies.yaml"

	defaultCandleCatalogDir     = "data/candles"
	defaultStrategyDefinitionDB = "data/strategies.db"

	defaultSweepMaxConcurrent = 4
)

// applyDefaults fills every sub-config's defaults, grounded on the
// teacher's applyFieldDefaults/fieldDefault key-tracked-default pattern.
func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Backtest.applyDefaults(keys)
	c.Strategy.applyDefaults(keys)
	c.Store.applyDefaults(keys)
	c.Sweep.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
		stringFieldDefault("app.http_addr", &a.HTTPAddr, defaultAppHTTPAddr),
		stringFieldDefault("app.log_path", &a.LogPath, defaultAppLogPath),
	)
}

func (b *BacktestConfig) applyDefaults(keys keySet) {
	if b == nil {
		return
	}
	applyFieldDefaults(keys,
		floatFieldDefault("backtest.spread_points", &b.SpreadPoints, defaultSpreadPoints),
		floatFieldDefault("backtest.slippage_points", &b.SlippagePoints, defaultSlippagePoints),
		floatFieldDefault("backtest.commission_per_lot", &b.CommissionPerLot, defaultCommissionPerLot),
		floatFieldDefault("backtest.initial_balance", &b.InitialBalance, defaultInitialBalance),
		stringFieldDefault("backtest.account_currency", &b.AccountCurrency, defaultAccountCurrency),
		fieldDefault{
			key:   "backtest.max_cached_bars",
			need:  func() bool { return b.MaxCachedBars <= 0 },
			apply: func() { b.MaxCachedBars = defaultMaxCachedBars },
		},
	)
}

func (s *StrategyConfig) applyDefaults(keys keySet) {
	if s == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("strategy.definitions_file", &s.DefinitionsFile, defaultDefinitionsFile),
	)
}

func (s *StoreConfig) applyDefaults(keys keySet) {
	if s == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("store.candle_catalog_dir", &s.CandleCatalogDir, defaultCandleCatalogDir),
		stringFieldDefault("store.strategy_definition_db", &s.StrategyDefinitionDB, defaultStrategyDefinitionDB),
	)
}

func (s *SweepConfig) applyDefaults(keys keySet) {
	if s == nil {
		return
	}
	applyFieldDefaults(keys,
		fieldDefault{
			key:   "sweep.max_concurrent",
			need:  func() bool { return s.MaxConcurrent <= 0 },
			apply: func() { s.MaxConcurrent = defaultSweepMaxConcurrent },
		},
	)
}

// Helper functions

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func floatFieldDefault(key string, target *float64, def float64) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil && *target == 0 },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}
