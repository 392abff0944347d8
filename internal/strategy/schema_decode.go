package strategy

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"

	"barterbench/internal/core"
	"barterbench/internal/strategy/risk"
)

// RiskPolicies is the fully-resolved, constructed risk triple for a
// StrategyDefinition.
type RiskPolicies struct {
	StopLoss       risk.StopLossPolicy
	TakeProfit     risk.TakeProfitPolicy
	PositionSizing risk.PositionSizingPolicy
}

// BuildRiskPolicies decodes a StrategyDefinition's risk block into concrete
// policy instances, grounded on internal/config/config.go's Unmarshal
// decode idiom (mapstructure.Decode into typed param structs).
func BuildRiskPolicies(def core.StrategyDefinition) (RiskPolicies, error) {
	stopLoss, err := buildStopLoss(def.Risk.StopLoss)
	if err != nil {
		return RiskPolicies{}, err
	}
	takeProfit, err := buildTakeProfit(def.Risk.TakeProfit)
	if err != nil {
		return RiskPolicies{}, err
	}
	sizing, err := buildSizing(def.Risk.PositionSizing)
	if err != nil {
		return RiskPolicies{}, err
	}
	return RiskPolicies{StopLoss: stopLoss, TakeProfit: takeProfit, PositionSizing: sizing}, nil
}

func buildStopLoss(block core.RiskBlock) (risk.StopLossPolicy, error) {
	switch strings.ToLower(block.Type) {
	case "fixed_pips", "fixed_pips_stop_loss", "":
		var params struct {
			Pips float64 `mapstructure:"pips"`
		}
		if err := decodeParams(block.Parameters, &params); err != nil {
			return nil, fmt.Errorf("stop_loss: %w", err)
		}
		return risk.NewFixedPipsStopLoss(params.Pips)
	default:
		return nil, fmt.Errorf("%w: unknown stop_loss policy type %q", core.ErrInvalidArgument, block.Type)
	}
}

func buildTakeProfit(block core.RiskBlock) (risk.TakeProfitPolicy, error) {
	switch strings.ToLower(block.Type) {
	case "fixed_pips", "fixed_pips_take_profit", "":
		var params struct {
			Pips float64 `mapstructure:"pips"`
		}
		if err := decodeParams(block.Parameters, &params); err != nil {
			return nil, fmt.Errorf("take_profit: %w", err)
		}
		return risk.NewFixedPipsTakeProfit(params.Pips)
	case "risk_reward":
		var params struct {
			Ratio float64 `mapstructure:"ratio"`
		}
		if err := decodeParams(block.Parameters, &params); err != nil {
			return nil, fmt.Errorf("take_profit: %w", err)
		}
		return risk.NewRiskRewardTakeProfit(params.Ratio)
	default:
		return nil, fmt.Errorf("%w: unknown take_profit policy type %q", core.ErrInvalidArgument, block.Type)
	}
}

func buildSizing(block core.RiskBlock) (risk.PositionSizingPolicy, error) {
	switch strings.ToLower(block.Type) {
	case "fixed_lot", "":
		var params struct {
			Lots float64 `mapstructure:"lots"`
		}
		if err := decodeParams(block.Parameters, &params); err != nil {
			return nil, fmt.Errorf("position_sizing: %w", err)
		}
		return risk.NewFixedLotPositionSizing(params.Lots)
	case "risk_percent":
		var params struct {
			Percent  float64 `mapstructure:"percent"`
			PipValue float64 `mapstructure:"pip_value"`
		}
		if err := decodeParams(block.Parameters, &params); err != nil {
			return nil, fmt.Errorf("position_sizing: %w", err)
		}
		return risk.NewRiskPercentPositionSizing(params.Percent, params.PipValue)
	default:
		return nil, fmt.Errorf("%w: unknown position_sizing policy type %q", core.ErrInvalidArgument, block.Type)
	}
}

func decodeParams(src map[string]interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	return mapstructure.Decode(src, dst)
}

// ExtractSymbolIDs digs symbol_list out of a raw strategy-definition row's
// free-form config JSON without fully unmarshalling it, the way a loosely
// typed parameter bag is read elsewhere (§6's "config (nested JSON)" wire
// row). Returns nil if the path is absent or is not an array.
func ExtractSymbolIDs(rawConfigJSON string) []int64 {
	result := gjson.Get(rawConfigJSON, "symbol_list")
	if !result.Exists() || !result.IsArray() {
		return nil
	}
	ids := make([]int64, 0, len(result.Array()))
	for _, v := range result.Array() {
		ids = append(ids, v.Int())
	}
	return ids
}
