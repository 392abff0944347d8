package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"barterbench/internal/core"
)

func writeDefinitionsFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "strategies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFileConfigProviderLoadsEnabledLatestVersionOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinitionsFile(t, dir, `
strategies:
  - name: BuyOnFirstBar
    version: 1
    main_timeframe: M5
    enabled: true
  - name: BuyOnFirstBar
    version: 2
    main_timeframe: M5
    enabled: true
  - name: Disabled
    version: 1
    main_timeframe: M5
    enabled: false
`)

	provider, err := NewFileConfigProvider(path)
	require.NoError(t, err)

	defs, err := provider.LoadAll()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Equal(t, "BuyOnFirstBar", defs[0].Name)
	require.Equal(t, 2, defs[0].Version)
}

func TestFileConfigProviderLoadByNameUnknownReturnsNil(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinitionsFile(t, dir, "strategies: []\n")

	provider, err := NewFileConfigProvider(path)
	require.NoError(t, err)

	def, err := provider.LoadByName("missing")
	require.NoError(t, err)
	require.Nil(t, def)
}

func TestNewFileConfigProviderRejectsEmptyPath(t *testing.T) {
	_, err := NewFileConfigProvider("")
	require.Error(t, err)
}

func TestFileConfigProviderSubscribeRegistersListenerWithoutFiring(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinitionsFile(t, dir, `
strategies:
  - name: BuyOnFirstBar
    version: 1
    main_timeframe: M5
    enabled: true
`)

	provider, err := NewFileConfigProvider(path)
	require.NoError(t, err)

	var calls int
	var lastSnapshot []core.StrategyDefinition
	provider.Subscribe(func(defs []core.StrategyDefinition) {
		calls++
		lastSnapshot = defs
	})

	// Subscribe only registers the listener; it fires on the next file
	// change, not immediately, so no call has happened yet.
	require.Equal(t, 0, calls)
	require.Nil(t, lastSnapshot)
}
