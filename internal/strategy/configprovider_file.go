package strategy

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"barterbench/internal/core"
	"barterbench/internal/logger"
)

// fileDefinitions is the on-disk shape of a strategy-definitions file,
// decoded via viper/mapstructure the way profile_loader.go decodes
// FileConfig.
type fileDefinitions struct {
	Strategies []core.StrategyDefinition `mapstructure:"strategies"`
}

// FileConfigProvider loads strategy definitions from a YAML/JSON file and
// hot-reloads on change. Grounded on
// internal/config/loader/profile_loader.go's ProfileLoader (viper +
// fsnotify WatchConfig/OnConfigChange, a versioned snapshot, subscriber
// callbacks) — adapted from profile definitions to strategy definitions.
type FileConfigProvider struct {
	path string
	v    *viper.Viper

	mu        sync.RWMutex
	enabled   map[string]core.StrategyDefinition
	listeners []func([]core.StrategyDefinition)
}

// NewFileConfigProvider reads path and begins watching it for changes.
func NewFileConfigProvider(path string) (*FileConfigProvider, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: strategy config provider requires a path", core.ErrInvalidArgument)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read strategy definitions: %v", core.ErrExternalFailure, err)
	}

	p := &FileConfigProvider{path: path, v: v}
	if err := p.reload(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(evt fsnotify.Event) {
		if err := p.reload(); err != nil {
			logger.Errorf("strategy definitions reload failed (%s): %v", evt.Name, err)
			return
		}
		p.notify()
	})
	v.WatchConfig()
	return p, nil
}

func (p *FileConfigProvider) reload() error {
	var file fileDefinitions
	if err := p.v.Unmarshal(&file); err != nil {
		return fmt.Errorf("%w: parse strategy definitions: %v", core.ErrExternalFailure, err)
	}

	enabledOnly := make([]core.StrategyDefinition, 0, len(file.Strategies))
	for _, def := range file.Strategies {
		if def.Enabled {
			enabledOnly = append(enabledOnly, def)
		}
	}
	latest := latestVersionPerName(enabledOnly)

	byName := make(map[string]core.StrategyDefinition, len(latest))
	for _, def := range latest {
		byName[strings.ToLower(def.Name)] = def
	}

	p.mu.Lock()
	p.enabled = byName
	p.mu.Unlock()

	logger.Infof("strategy definitions: reloaded %d enabled definitions from %s", len(byName), p.path)
	return nil
}

func (p *FileConfigProvider) notify() {
	p.mu.RLock()
	snapshot := p.snapshotLocked()
	listeners := append([]func([]core.StrategyDefinition){}, p.listeners...)
	p.mu.RUnlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (p *FileConfigProvider) snapshotLocked() []core.StrategyDefinition {
	out := make([]core.StrategyDefinition, 0, len(p.enabled))
	for _, def := range p.enabled {
		out = append(out, def)
	}
	return out
}

// Subscribe registers fn to be called with the full enabled-definitions
// snapshot whenever the backing file changes.
func (p *FileConfigProvider) Subscribe(fn func([]core.StrategyDefinition)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

func (p *FileConfigProvider) LoadAll() ([]core.StrategyDefinition, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked(), nil
}

func (p *FileConfigProvider) LoadByName(name string) (*core.StrategyDefinition, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	def, ok := p.enabled[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	return &def, nil
}
