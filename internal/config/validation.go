package config

import (
	"fmt"
	"strings"
)

// validate runs basic sanity checks, grounded on the teacher's
// validation.go per-section validate() methods and wrapped fmt.Errorf
// style.
func validate(c *Config) error {
	if err := c.Backtest.validate(); err != nil {
		return err
	}
	if err := c.Strategy.validate(); err != nil {
		return err
	}
	if err := c.Sweep.validate(); err != nil {
		return err
	}
	return nil
}

func (b *BacktestConfig) validate() error {
	if b.SpreadPoints < 0 {
		return fmt.Errorf("backtest.spread_points must be >= 0")
	}
	if b.SlippagePoints < 0 {
		return fmt.Errorf("backtest.slippage_points must be >= 0")
	}
	if b.CommissionPerLot < 0 {
		return fmt.Errorf("backtest.commission_per_lot must be >= 0")
	}
	if b.InitialBalance <= 0 {
		return fmt.Errorf("backtest.initial_balance must be > 0")
	}
	if strings.TrimSpace(b.AccountCurrency) == "" {
		return fmt.Errorf("backtest.account_currency cannot be empty")
	}
	if b.MaxCachedBars < 50 || b.MaxCachedBars > 1000 {
		return fmt.Errorf("backtest.max_cached_bars must be in [50,1000]")
	}
	return nil
}

func (s *StrategyConfig) validate() error {
	if strings.TrimSpace(s.DefinitionsFile) == "" {
		return fmt.Errorf("strategy.definitions_file cannot be empty")
	}
	return nil
}

func (s *SweepConfig) validate() error {
	if s.MaxConcurrent < 0 {
		return fmt.Errorf("sweep.max_concurrent must be >= 0")
	}
	return nil
}
