package config

import "strings"

// Config is the top-level configuration carrier for cmd/backtestctl,
// grounded on the teacher's nested-config-struct layout
// (internal/config/types.go): one sub-struct per concern, toml tags
// reused as the mapstructure decode key since viper decodes through the
// same struct tags regardless of source format.
type Config struct {
	App      AppConfig      `toml:"app"`
	Backtest BacktestConfig `toml:"backtest"`
	Strategy StrategyConfig `toml:"strategy"`
	Store    StoreConfig    `toml:"store"`
	Sweep    SweepConfig    `toml:"sweep"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

// BacktestConfig carries internal/broker.BacktestSettings' five fields so
// they can be decoded straight off a config file instead of hand-built.
// MaxCachedBars has no BacktestSettings counterpart; it is only defaulted
// and validated here, and the engine's bar cache uses its own fixed cap.
type BacktestConfig struct {
	SpreadPoints     float64 `toml:"spread_points"`
	SlippagePoints   float64 `toml:"slippage_points"`
	CommissionPerLot float64 `toml:"commission_per_lot"`
	InitialBalance   float64 `toml:"initial_balance"`
	AccountCurrency  string  `toml:"account_currency"`
	MaxCachedBars    int     `toml:"max_cached_bars"`
}

// StrategyConfig points at the file-backed StrategyConfigProvider's
// definitions file (fsnotify watches its containing directory for
// writes and triggers a hot reload).
type StrategyConfig struct {
	DefinitionsFile string `toml:"definitions_file"`
}

// StoreConfig locates the two optional local persistence adapters: the
// per-symbol-per-timeframe candle catalog and the gorm-backed strategy
// definition store.
type StoreConfig struct {
	CandleCatalogDir     string `toml:"candle_catalog_dir"`
	StrategyDefinitionDB string `toml:"strategy_definition_db"`
}

// SweepConfig bounds parallel backtest sweeps (§5 "parallel optimizer
// sweeps").
type SweepConfig struct {
	MaxConcurrent int `toml:"max_concurrent"`
}

// keySet tracks config paths explicitly set in a config file, so
// applyDefaults only fills genuinely-absent fields.
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault describes one field's default-value rule.
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
