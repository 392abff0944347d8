package broker

import "github.com/shopspring/decimal"

// BacktestSettings configures the simulated executor. Defaults match §4.2
// of the execution design.
type BacktestSettings struct {
	SpreadPoints     decimal.Decimal `mapstructure:"spread_points" json:"spread_points"`
	SlippagePoints   decimal.Decimal `mapstructure:"slippage_points" json:"slippage_points"`
	CommissionPerLot decimal.Decimal `mapstructure:"commission_per_lot" json:"commission_per_lot"`
	InitialBalance   decimal.Decimal `mapstructure:"initial_balance" json:"initial_balance"`
	AccountCurrency  string          `mapstructure:"account_currency" json:"account_currency"`
}

// DefaultBacktestSettings returns the documented default configuration.
func DefaultBacktestSettings() BacktestSettings {
	return BacktestSettings{
		SpreadPoints:     decimal.NewFromFloat(0.0004),
		SlippagePoints:   decimal.NewFromFloat(0.0001),
		CommissionPerLot: decimal.NewFromFloat(3.0),
		InitialBalance:   decimal.NewFromFloat(10000),
		AccountCurrency:  "USD",
	}
}
