// Package backtest implements the orchestrator that sequences bar replay
// against a fresh engine/executor/feed instance per run and reduces closed
// positions into P&L/drawdown/profit-factor metrics. Grounded on
// internal/backtest/simulator.go's Simulator/simRunner.
package backtest

import (
	"fmt"

	"barterbench/internal/core"
)

// SimulatedClock is the single "now" cell shared, read-only, by the
// executor and feed, with a distinct advance operation exposed only to the
// orchestrator that owns it (design note: ownership of clock and
// executor). No ready-made Clock abstraction exists anywhere in the
// source corpus; this is new, grounded directly on the design note's own
// description.
type SimulatedClock struct {
	now int64
}

// NewSimulatedClock constructs a clock initialized to the given instant.
func NewSimulatedClock(start int64) *SimulatedClock {
	return &SimulatedClock{now: start}
}

func (c *SimulatedClock) Now() int64         { return c.now }
func (c *SimulatedClock) UnixSeconds() int64 { return c.now }

// AdvanceTo moves the clock forward. Fails with ErrBackwardsTime if asked
// to move to an earlier instant.
func (c *SimulatedClock) AdvanceTo(instant int64) error {
	if instant < c.now {
		return fmt.Errorf("%w: attempted to advance from %d to %d", core.ErrBackwardsTime, c.now, instant)
	}
	c.now = instant
	return nil
}

// Reset bypasses the backwards-time check; test-only.
func (c *SimulatedClock) Reset(instant int64) {
	c.now = instant
}
