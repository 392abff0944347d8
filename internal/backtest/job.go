package backtest

import "barterbench/internal/core"

// BacktestJob is the orchestrator's input, grounded on
// internal/backtest/run.go's RunConfig/RunRequest, renamed to the spec's
// job contract (§6).
type BacktestJob struct {
	JobID           string                 `json:"job_id"`
	StrategyName    string                 `json:"strategy_name"`
	StrategyVersion int                    `json:"strategy_version"`
	Symbols         []core.SymbolId        `json:"symbols"`
	StartDate       int64                  `json:"start_date"`
	EndDate         int64                  `json:"end_date"`
	Parameters      map[string]interface{} `json:"parameters,omitempty"`
	RequestedAt     int64                  `json:"requested_at"`
}

// BacktestResult is the orchestrator's output, grounded on
// internal/backtest/run.go's RunStats, renamed to the spec's result
// contract (§6).
type BacktestResult struct {
	JobID              string  `json:"job_id"`
	Success            bool    `json:"success"`
	Error              string  `json:"error,omitempty"`
	InitialBalance     float64 `json:"initial_balance"`
	FinalBalance       float64 `json:"final_balance"`
	TotalTrades        int     `json:"total_trades"`
	WinningTrades      int     `json:"winning_trades"`
	LosingTrades       int     `json:"losing_trades"`
	ProfitFactor       float64 `json:"profit_factor"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
	WinRate            float64 `json:"win_rate"`
	CompletedAt        int64   `json:"completed_at"`
}

func unsuccessfulResult(jobID string, err error) BacktestResult {
	return BacktestResult{JobID: jobID, Success: false, Error: err.Error()}
}
