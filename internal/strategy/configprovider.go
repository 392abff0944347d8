package strategy

import "barterbench/internal/core"

// ConfigProvider yields strategy definitions by name or "all enabled".
// Contract only; the wire encoding is implementation detail (§6).
type ConfigProvider interface {
	LoadAll() ([]core.StrategyDefinition, error)
	LoadByName(name string) (*core.StrategyDefinition, error)
}

// latestVersionPerName dedups a definition list so the latest version wins
// per name (S7), grounded on internal/config/config.go's
// collect-then-pick-one merge pattern.
func latestVersionPerName(defs []core.StrategyDefinition) []core.StrategyDefinition {
	best := make(map[string]core.StrategyDefinition, len(defs))
	order := make([]string, 0, len(defs))
	for _, def := range defs {
		existing, seen := best[def.Name]
		if !seen {
			order = append(order, def.Name)
			best[def.Name] = def
			continue
		}
		if def.Version > existing.Version {
			best[def.Name] = def
		}
	}
	out := make([]core.StrategyDefinition, 0, len(order))
	for _, name := range order {
		out = append(out, best[name])
	}
	return out
}
