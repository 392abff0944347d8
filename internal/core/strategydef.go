package core

// RiskBlock is a tagged, JSON-parameterized risk-policy slot inside a
// StrategyDefinition, grounded on internal/config/types.go's
// nested-config-struct-with-map-of-any-parameters pattern.
type RiskBlock struct {
	Type       string                 `json:"type" mapstructure:"type"`
	Parameters map[string]interface{} `json:"parameters" mapstructure:"parameters"`
}

// StrategyRisk groups the three pluggable risk policy slots.
type StrategyRisk struct {
	StopLoss       RiskBlock `json:"stop_loss" mapstructure:"stop_loss"`
	TakeProfit     RiskBlock `json:"take_profit" mapstructure:"take_profit"`
	PositionSizing RiskBlock `json:"position_sizing" mapstructure:"position_sizing"`
}

// StrategyDefinition is a versioned, JSON-parameterized strategy
// configuration as loaded from a StrategyConfigProvider.
type StrategyDefinition struct {
	Name               string              `json:"name" mapstructure:"name"`
	Version            int                 `json:"version" mapstructure:"version"`
	MainTimeframe       Timeframe           `json:"main_timeframe" mapstructure:"main_timeframe"`
	RequiredTimeframes map[Timeframe]int   `json:"required_timeframes" mapstructure:"required_timeframes"`
	Parameters         map[string]interface{} `json:"parameters" mapstructure:"parameters"`
	Risk               StrategyRisk        `json:"risk" mapstructure:"risk"`
	Symbols            []SymbolId          `json:"symbols" mapstructure:"symbols"`
	Enabled            bool                `json:"enabled" mapstructure:"enabled"`
}
