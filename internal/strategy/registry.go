package strategy

import (
	"fmt"
	"strings"
	"sync"

	"barterbench/internal/core"
	"barterbench/internal/engine"
	"barterbench/internal/logger"
)

// Constructor builds a strategy instance from a definition. Grounded on
// internal/trader/handler_registry.go's registry-populated-at-init
// pattern, replacing the source's reflection-based plugin discovery per
// the design notes.
type Constructor func(def core.StrategyDefinition) (engine.StrategyInstance, error)

// Registry is a case-insensitive name -> constructor map.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a constructor under name, replacing any existing entry
// (mirrors HandlerRegistry.Register's "last registration wins" behavior).
func (r *Registry) Register(name string, ctor Constructor) {
	if ctor == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[strings.ToLower(name)] = ctor
}

// RegisterDefaults registers the built-in strategies. A definition whose
// risk block names at least one policy type gets its signal generator
// wrapped in a RiskComposedStrategy so the configured policies, not the
// strategy's hardcoded constants, drive the resulting order.
func (r *Registry) RegisterDefaults() {
	r.Register("BuyOnFirstBar", func(def core.StrategyDefinition) (engine.StrategyInstance, error) {
		mainTf := def.MainTimeframe
		if mainTf == "" {
			mainTf = core.M5
		}
		inner := NewBuyOnFirstBarStrategy(mainTf)
		if !riskConfigured(def.Risk) {
			return inner, nil
		}
		policies, err := BuildRiskPolicies(def)
		if err != nil {
			return nil, fmt.Errorf("BuyOnFirstBar: %w", err)
		}
		return NewRiskComposedStrategy(inner, policies), nil
	})
	logger.Debugf("strategy: registered %d built-in constructors", len(r.constructors))
}

// CreateByName resolves a constructor by name and invokes it with the
// given definition. Returns (nil, nil) on an
// unknown name rather than erroring, per the "do not throw on lookup
// failure" rule.
func (r *Registry) CreateByName(name string, def core.StrategyDefinition) (engine.StrategyInstance, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return ctor(def)
}

// CreateFromDefinition resolves by def.Name.
func (r *Registry) CreateFromDefinition(def core.StrategyDefinition) (engine.StrategyInstance, error) {
	return r.CreateByName(def.Name, def)
}
