package backtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"barterbench/internal/core"
)

// mockNotifier is a hand-rolled testify mock, grounded on
// internal/engine/engine_test.go's mock.Mock embedding style.
type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendText(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

func TestNullEventSinkDiscardsEverything(t *testing.T) {
	sink := NullEventSink{}
	assert.NotPanics(t, func() {
		sink.PublishTrade(core.Trade{})
		sink.PublishOrder(core.Order{})
		sink.PublishPosition(core.Position{})
		sink.PublishEngineStatus("ignored")
	})
}

func TestNotifyingEventSinkForwardsEngineStatus(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("SendText", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "run job-1 completed")
	})).Return(nil)

	sink := NewNotifyingEventSink(notifier)
	sink.PublishTrade(core.Trade{})
	sink.PublishOrder(core.Order{})
	sink.PublishPosition(core.Position{})
	sink.PublishEngineStatus("run job-1 completed")

	notifier.AssertExpectations(t)
}

func TestNotifyingEventSinkToleratesNilNotifier(t *testing.T) {
	sink := NewNotifyingEventSink(nil)
	assert.NotPanics(t, func() { sink.PublishEngineStatus("no-op") })
}
