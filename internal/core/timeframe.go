package core

import (
	"fmt"
	"time"
)

// Timeframe is a named bar duration, comparable and parseable from its code.
// Generalized from internal/backtest/timeframe.go's ParseTimeframe/
// supportedTimeframes map (crypto set {5m..7d}) to the FX/equity-flavored
// set this engine operates on.
type Timeframe string

const (
	M1  Timeframe = "M1"
	M5  Timeframe = "M5"
	M15 Timeframe = "M15"
	M30 Timeframe = "M30"
	H1  Timeframe = "H1"
	H4  Timeframe = "H4"
	D1  Timeframe = "D1"
	W1  Timeframe = "W1"
)

var timeframeDurations = map[Timeframe]time.Duration{
	M1:  time.Minute,
	M5:  5 * time.Minute,
	M15: 15 * time.Minute,
	M30: 30 * time.Minute,
	H1:  time.Hour,
	H4:  4 * time.Hour,
	D1:  24 * time.Hour,
	W1:  7 * 24 * time.Hour,
}

// Duration returns the wall-clock span a single bar of this timeframe covers.
func (tf Timeframe) Duration() (time.Duration, error) {
	d, ok := timeframeDurations[tf]
	if !ok {
		return 0, fmt.Errorf("%w: unknown timeframe %q", ErrInvalidArgument, tf)
	}
	return d, nil
}

// Valid reports whether tf is one of the known enum members.
func (tf Timeframe) Valid() bool {
	_, ok := timeframeDurations[tf]
	return ok
}

// ParseTimeframe parses a timeframe code, rejecting unknown codes with
// ErrInvalidArgument rather than returning a zero value silently.
func ParseTimeframe(code string) (Timeframe, error) {
	tf := Timeframe(code)
	if !tf.Valid() {
		return "", fmt.Errorf("%w: unknown timeframe code %q", ErrInvalidArgument, code)
	}
	return tf, nil
}
