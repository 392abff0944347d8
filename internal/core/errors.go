package core

import "errors"

// Sentinel error kinds. Components wrap these with fmt.Errorf("%w: ...")
// so callers can classify a failure with errors.Is while still getting a
// human-readable message.
var (
	ErrCurrencyMismatch      = errors.New("currency mismatch")
	ErrBackwardsTime         = errors.New("clock moved backwards")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrUnknownStrategy       = errors.New("unknown strategy")
	ErrInsufficientHistory   = errors.New("insufficient history")
	ErrCancellationRequested = errors.New("cancellation requested")
	ErrExternalFailure       = errors.New("external failure")
)
