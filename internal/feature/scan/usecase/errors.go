package usecase

import (
	"errors"
	"fmt"
)

// ErrZeroStopLoss is returned by Evaluate when the candidate stop-loss
// price is zero, which would make the risk percentage undefined. Treated
// as a data-quality problem: the symbol is skipped, never a panic.
var ErrZeroStopLoss = errors.New("stop-loss price is zero")

// FetchError wraps a per-symbol candle fetch failure. It is recoverable:
// the orchestrator records it and continues with the remaining symbols.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch candles for %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
