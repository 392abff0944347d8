package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"barterbench/internal/core"
)

func sampleBar(ts int64, price float64) core.Bar {
	return core.Bar{
		SymbolID:  core.SymbolId(1),
		Timeframe: core.M5,
		Timestamp: ts,
		Open:      decimal.NewFromFloat(price),
		High:      decimal.NewFromFloat(price + 0.001),
		Low:       decimal.NewFromFloat(price - 0.001),
		Close:     decimal.NewFromFloat(price),
		Volume:    decimal.NewFromFloat(10),
	}
}

func TestCatalogInsertAndGetBarsRoundTrip(t *testing.T) {
	catalog, err := NewCatalog(t.TempDir())
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	bars := []core.Bar{sampleBar(1_000, 1.1000), sampleBar(1_300, 1.1005), sampleBar(1_600, 1.1010)}
	require.NoError(t, catalog.InsertBars(ctx, core.SymbolId(1), core.M5, bars))

	got, err := catalog.GetBars(ctx, core.SymbolId(1), core.M5, 1_000, 1_600)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.True(t, got[0].Close.Equal(decimal.NewFromFloat(1.1000)))
	require.Equal(t, int64(1_300), got[1].Timestamp)
}

func TestCatalogInsertBarsUpsertsOnConflictingTimestamp(t *testing.T) {
	catalog, err := NewCatalog(t.TempDir())
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	require.NoError(t, catalog.InsertBars(ctx, core.SymbolId(1), core.M5, []core.Bar{sampleBar(1_000, 1.1000)}))
	require.NoError(t, catalog.InsertBars(ctx, core.SymbolId(1), core.M5, []core.Bar{sampleBar(1_000, 1.2500)}))

	got, err := catalog.GetBars(ctx, core.SymbolId(1), core.M5, 1_000, 1_000)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].Close.Equal(decimal.NewFromFloat(1.2500)))
}

func TestCatalogGetBarsUnknownPairReturnsEmpty(t *testing.T) {
	catalog, err := NewCatalog(t.TempDir())
	require.NoError(t, err)
	defer catalog.Close()

	got, err := catalog.GetBars(context.Background(), core.SymbolId(99), core.H1, 0, 9_999)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestNewCatalogRejectsEmptyRoot(t *testing.T) {
	_, err := NewCatalog("")
	require.Error(t, err)
}
