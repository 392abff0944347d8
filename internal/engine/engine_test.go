package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"barterbench/internal/core"
)

// mockExecution is a hand-rolled testify mock, grounded on
// internal/agent/engine/live_engine_test.go's MockPosService/MockMktService
// pattern (mock.Mock embedding, not a generated mock package).
type mockExecution struct{ mock.Mock }

func (m *mockExecution) PlaceOrder(symbol core.SymbolId, side core.Side, orderType core.OrderType, volume core.Quantity, price, stopLoss, takeProfit *decimal.Decimal, clientOrderID string) (core.Order, error) {
	args := m.Called(symbol, side, orderType, volume, price, stopLoss, takeProfit, clientOrderID)
	order, _ := args.Get(0).(core.Order)
	return order, args.Error(1)
}

func (m *mockExecution) ModifyOrder(orderID string, stopLoss, takeProfit *decimal.Decimal) (core.Order, error) {
	args := m.Called(orderID, stopLoss, takeProfit)
	order, _ := args.Get(0).(core.Order)
	return order, args.Error(1)
}

func (m *mockExecution) CancelOrder(orderID string)    { m.Called(orderID) }
func (m *mockExecution) ClosePosition(positionID string) { m.Called(positionID) }
func (m *mockExecution) GetPositions() []core.Position {
	args := m.Called()
	positions, _ := args.Get(0).([]core.Position)
	return positions
}

type mockSink struct{ mock.Mock }

func (m *mockSink) PublishTrade(t core.Trade)          { m.Called(t) }
func (m *mockSink) PublishOrder(o core.Order)          { m.Called(o) }
func (m *mockSink) PublishPosition(p core.Position)    { m.Called(p) }
func (m *mockSink) PublishEngineStatus(message string) { m.Called(message) }

type fixedClock struct{ now int64 }

func (c fixedClock) Now() int64         { return c.now }
func (c fixedClock) UnixSeconds() int64 { return c.now }

type fakeStrategy struct {
	name       string
	mainTf     core.Timeframe
	required   map[core.Timeframe]int
	fired      bool
	result     core.SignalResult
}

func (s *fakeStrategy) Name() string                              { return s.name }
func (s *fakeStrategy) Version() int                               { return 1 }
func (s *fakeStrategy) MainTimeframe() core.Timeframe              { return s.mainTf }
func (s *fakeStrategy) RequiredTimeframes() map[core.Timeframe]int { return s.required }
func (s *fakeStrategy) Evaluate(ctx core.SignalContext) (core.SignalResult, error) {
	if s.fired {
		return core.SignalResult{Signal: core.SignalNone}, nil
	}
	s.fired = true
	return s.result, nil
}

func testBar(ts int64, closePrice float64) core.Bar {
	return core.Bar{
		SymbolID:  1,
		Timeframe: core.M5,
		Timestamp: ts,
		Open:      decimal.NewFromFloat(closePrice),
		High:      decimal.NewFromFloat(closePrice),
		Low:       decimal.NewFromFloat(closePrice),
		Close:     decimal.NewFromFloat(closePrice),
		Volume:    decimal.NewFromInt(10),
	}
}

func TestEngine_OnBarClosed_CacheCapAndDedup(t *testing.T) {
	eng := New(nil, &mockExecution{}, fixedClock{now: 1}, &mockSink{})

	for i := 0; i < 1500; i++ {
		require.NoError(t, eng.OnBarClosed(context.Background(), testBar(int64(i+1), 1.0)))
	}
	assert.Equal(t, 1000, eng.CachedBarCount(1, core.M5))

	// Duplicate timestamp is dropped; count is unchanged.
	require.NoError(t, eng.OnBarClosed(context.Background(), testBar(1500, 1.0)))
	assert.Equal(t, 1000, eng.CachedBarCount(1, core.M5))
}

func TestEngine_InsufficientHistorySkipsEvaluation(t *testing.T) {
	strategy := &fakeStrategy{name: "s", mainTf: core.M5, required: map[core.Timeframe]int{core.M5: 5}}
	exec := &mockExecution{}
	sink := &mockSink{}
	eng := New(nil, exec, fixedClock{now: 1}, sink)
	eng.RegisterStrategy(strategy)

	require.NoError(t, eng.OnBarClosed(context.Background(), testBar(1, 1.0)))
	exec.AssertNotCalled(t, "PlaceOrder")
}

func TestEngine_SignalTranslatesToOrder(t *testing.T) {
	strategy := &fakeStrategy{
		name:     "buy-first",
		mainTf:   core.M5,
		required: map[core.Timeframe]int{core.M5: 1},
		result:   core.SignalResult{Signal: core.SignalBuy},
	}
	exec := &mockExecution{}
	sink := &mockSink{}
	exec.On("PlaceOrder", mock.Anything, core.Buy, core.Market, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(core.Order{OrderID: "o1", Status: core.OrderPending}, nil)
	sink.On("PublishOrder", mock.Anything).Return()
	sink.On("PublishEngineStatus", mock.Anything).Return()

	eng := New(nil, exec, fixedClock{now: 100}, sink)
	eng.RegisterStrategy(strategy)

	require.NoError(t, eng.OnBarClosed(context.Background(), testBar(1, 1.1)))

	exec.AssertCalled(t, "PlaceOrder", core.SymbolId(1), core.Buy, core.Market, mock.Anything, mock.Anything, mock.Anything, mock.Anything, "buy-first-100")
	sink.AssertCalled(t, "PublishOrder", mock.Anything)
}

func TestEngine_OrderFailureNeverPropagates(t *testing.T) {
	strategy := &fakeStrategy{
		name:     "buy-first",
		mainTf:   core.M5,
		required: map[core.Timeframe]int{core.M5: 1},
		result:   core.SignalResult{Signal: core.SignalBuy},
	}
	exec := &mockExecution{}
	sink := &mockSink{}
	exec.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(core.Order{}, assert.AnError)
	sink.On("PublishEngineStatus", mock.Anything).Return()

	eng := New(nil, exec, fixedClock{now: 1}, sink)
	eng.RegisterStrategy(strategy)

	err := eng.OnBarClosed(context.Background(), testBar(1, 1.1))
	assert.NoError(t, err)
	sink.AssertCalled(t, "PublishEngineStatus", mock.Anything)
}
