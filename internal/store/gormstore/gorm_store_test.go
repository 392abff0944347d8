package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"barterbench/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	return store
}

func sampleDefinition(name string, version int) core.StrategyDefinition {
	return core.StrategyDefinition{
		Name:               name,
		Version:            version,
		MainTimeframe:      core.M5,
		RequiredTimeframes: map[core.Timeframe]int{core.M5: 1},
		Parameters:         map[string]interface{}{"lookback": float64(20)},
		Enabled:            true,
	}
}

func TestStoreUpsertAndFindByNameReturnsLatestVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, sampleDefinition("BuyOnFirstBar", 1)))
	require.NoError(t, store.Upsert(ctx, sampleDefinition("BuyOnFirstBar", 2)))

	found, err := store.FindByName(ctx, "BuyOnFirstBar")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, 2, found.Version)
	require.Equal(t, core.M5, found.MainTimeframe)
}

func TestStoreFindByNameUnknownReturnsNil(t *testing.T) {
	store := newTestStore(t)
	found, err := store.FindByName(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestStoreUpsertIsIdempotentPerVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	def := sampleDefinition("BuyOnFirstBar", 1)
	require.NoError(t, store.Upsert(ctx, def))
	def.Enabled = false
	require.NoError(t, store.Upsert(ctx, def))

	found, err := store.FindByName(ctx, "BuyOnFirstBar")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.False(t, found.Enabled)
}

func TestStoreListAllReturnsEveryNameAndVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, sampleDefinition("StrategyA", 1)))
	require.NoError(t, store.Upsert(ctx, sampleDefinition("StrategyB", 1)))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}
