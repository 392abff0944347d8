package backtest

import (
	"barterbench/internal/core"
	"barterbench/internal/gateway/notifier"
)

// engineStatusIcon prefixes every status push sent through a notifier, the
// way the teacher's decision-completion messages lead with an emoji.
const engineStatusIcon = "\U0001F4CA" // 📊

// NullEventSink discards every event. The backtest orchestrator uses this
// by default (§6 "the backtest orchestrator uses a null sink").
type NullEventSink struct{}

func (NullEventSink) PublishTrade(core.Trade)       {}
func (NullEventSink) PublishOrder(core.Order)       {}
func (NullEventSink) PublishPosition(core.Position) {}
func (NullEventSink) PublishEngineStatus(string)    {}

// NotifyingEventSink fans engine status messages out to a
// notifier.TextNotifier, the way the teacher's Notifier pushes a run's
// completion summary to Telegram. Used by the live service, not the
// backtest orchestrator.
type NotifyingEventSink struct {
	notifier notifier.TextNotifier
}

func NewNotifyingEventSink(n notifier.TextNotifier) *NotifyingEventSink {
	return &NotifyingEventSink{notifier: n}
}

func (s *NotifyingEventSink) PublishTrade(core.Trade)       {}
func (s *NotifyingEventSink) PublishOrder(core.Order)       {}
func (s *NotifyingEventSink) PublishPosition(core.Position) {}

func (s *NotifyingEventSink) PublishEngineStatus(message string) {
	if s.notifier == nil {
		return
	}
	rendered := notifier.StructuredMessage{
		Icon:  engineStatusIcon,
		Title: "Engine status",
		Sections: []notifier.MessageSection{
			{Lines: []string{message}},
		},
	}.RenderMarkdown()
	_ = s.notifier.SendText(rendered)
}
