package broker

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barterbench/internal/core"
)

type manualClock struct{ now int64 }

func (c *manualClock) Now() int64 { return c.now }

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func bar(ts int64, open, high, low, close float64) core.Bar {
	return core.Bar{
		SymbolID:  1,
		Timeframe: core.M5,
		Timestamp: ts,
		Open:      dec(open),
		High:      dec(high),
		Low:       dec(low),
		Close:     dec(close),
		Volume:    dec(100),
	}
}

func vol(t *testing.T, f float64) core.Quantity {
	t.Helper()
	q, err := core.QuantityFromFloat(f)
	require.NoError(t, err)
	return q
}

// S1: entry fill at open + spread, one entry trade, no exit on B1.
func TestSimulator_S1_EntryFillAtOpenPlusSpread(t *testing.T) {
	clock := &manualClock{now: 1705315500}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	_, err := ex.PlaceOrder(1, core.Buy, core.Market, vol(t, 0.01), nil, nil, nil, "s1-1705315500")
	require.NoError(t, err)

	b1 := bar(1705315500, 1.1000, 1.1010, 1.0990, 1.1005)
	require.NoError(t, ex.ProcessBar(b1))

	positions := ex.GetPositions()
	require.Len(t, positions, 1)
	assert.True(t, positions[0].EntryPrice.Equal(dec(1.1004)), "entry price: %s", positions[0].EntryPrice)
	assert.Len(t, ex.Trades(), 1)
	assert.Empty(t, ex.ClosedPositions())
}

// S2: T+1 stop does not trigger on the entry bar.
func TestSimulator_S2_StopDoesNotTriggerOnEntryBar(t *testing.T) {
	clock := &manualClock{now: 1705315500}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	sl := dec(1.0950)
	_, err := ex.PlaceOrder(1, core.Buy, core.Market, vol(t, 0.01), nil, &sl, nil, "s2")
	require.NoError(t, err)

	b1 := bar(1705315500, 1.1000, 1.1010, 1.0900, 1.0950)
	require.NoError(t, ex.ProcessBar(b1))

	assert.Len(t, ex.GetPositions(), 1)
	assert.Empty(t, ex.ClosedPositions())
}

// S3: long SL on subsequent bar, exit price ~= sl - slippage.
func TestSimulator_S3_LongSLWithSlippage(t *testing.T) {
	clock := &manualClock{now: 1705315500}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	sl := dec(1.0950)
	_, err := ex.PlaceOrder(1, core.Buy, core.Market, vol(t, 0.01), nil, &sl, nil, "s3")
	require.NoError(t, err)

	b1 := bar(1705315500, 1.1000, 1.1010, 1.0990, 1.1000)
	require.NoError(t, ex.ProcessBar(b1))

	clock.now = 1705315800
	b2 := bar(1705315800, 1.0980, 1.0985, 1.0940, 1.0950)
	require.NoError(t, ex.ProcessBar(b2))

	assert.Empty(t, ex.GetPositions())
	require.Len(t, ex.ClosedPositions(), 1)

	trades := ex.Trades()
	require.Len(t, trades, 2)
	exit := trades[1]
	assert.True(t, exit.Price.Sub(dec(1.0949)).Abs().LessThan(dec(0.00001)), "exit price: %s", exit.Price)
	assert.Equal(t, core.Sell, exit.Side)
	assert.Equal(t, trades[0].OrderID, trades[1].OrderID, "entry and exit trades must share an id so metrics can group them into one position")

	initial, _ := DefaultBacktestSettings().InitialBalance.Float64()
	assert.Less(t, ex.AccountBalance(), initial, "a losing SL exit must reduce the account balance")
}

// S4: short SL on ask-high, exit price ~= sl + slippage.
func TestSimulator_S4_ShortSLOnAskHigh(t *testing.T) {
	clock := &manualClock{now: 1705315500}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	sl := dec(1.1050)
	_, err := ex.PlaceOrder(1, core.Sell, core.Market, vol(t, 0.01), nil, &sl, nil, "s4")
	require.NoError(t, err)

	b1 := bar(1705315500, 1.1000, 1.1010, 1.0990, 1.1000)
	require.NoError(t, ex.ProcessBar(b1))

	clock.now = 1705315800
	b2 := bar(1705315800, 1.1020, 1.1060, 1.1010, 1.1040)
	require.NoError(t, ex.ProcessBar(b2))

	require.Len(t, ex.ClosedPositions(), 1)
	trades := ex.Trades()
	require.Len(t, trades, 2)
	exit := trades[1]
	assert.True(t, exit.Price.Sub(dec(1.1051)).Abs().LessThan(dec(0.00001)), "exit price: %s", exit.Price)
	assert.Equal(t, core.Buy, exit.Side)
}

// S5: long TP closes at exactly tp, no slippage.
func TestSimulator_S5_LongTakeProfit(t *testing.T) {
	clock := &manualClock{now: 1705315500}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	tp := dec(1.1100)
	_, err := ex.PlaceOrder(1, core.Buy, core.Market, vol(t, 0.01), nil, nil, &tp, "s5")
	require.NoError(t, err)

	b1 := bar(1705315500, 1.1000, 1.1010, 1.0990, 1.1000)
	require.NoError(t, ex.ProcessBar(b1))

	clock.now = 1705315800
	b2 := bar(1705315800, 1.1050, 1.1150, 1.1040, 1.1100)
	require.NoError(t, ex.ProcessBar(b2))

	require.Len(t, ex.ClosedPositions(), 1)
	trades := ex.Trades()
	require.Len(t, trades, 2)
	assert.True(t, trades[1].Price.Equal(dec(1.1100)))
}

// S6: short TP closes at exactly tp.
func TestSimulator_S6_ShortTakeProfit(t *testing.T) {
	clock := &manualClock{now: 1705315500}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	tp := dec(1.0900)
	_, err := ex.PlaceOrder(1, core.Sell, core.Market, vol(t, 0.01), nil, nil, &tp, "s6")
	require.NoError(t, err)

	b1 := bar(1705315500, 1.1000, 1.1010, 1.0990, 1.1000)
	require.NoError(t, ex.ProcessBar(b1))

	clock.now = 1705315800
	b2 := bar(1705315800, 1.0950, 1.0960, 1.0850, 1.0900)
	require.NoError(t, ex.ProcessBar(b2))

	require.Len(t, ex.ClosedPositions(), 1)
	trades := ex.Trades()
	require.Len(t, trades, 2)
	assert.True(t, trades[1].Price.Equal(dec(1.0900)))
}

func TestSimulator_ModifyOrder_PendingOnly(t *testing.T) {
	clock := &manualClock{now: 1}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	order, err := ex.PlaceOrder(1, core.Buy, core.Market, vol(t, 0.01), nil, nil, nil, "m1")
	require.NoError(t, err)

	sl := dec(1.05)
	modified, err := ex.ModifyOrder(order.OrderID, &sl, nil)
	require.NoError(t, err)
	require.NotNil(t, modified.StopLoss)
	assert.True(t, modified.StopLoss.Equal(sl))

	_, err = ex.ModifyOrder("unknown", &sl, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestSimulator_CancelAndCloseAreIdempotent(t *testing.T) {
	clock := &manualClock{now: 1}
	ex := NewSimulatedExecutor(DefaultBacktestSettings(), clock)

	ex.CancelOrder("does-not-exist")
	ex.ClosePosition("does-not-exist")
	assert.Empty(t, ex.GetPositions())
}
