// Package clock abstracts the wall clock so the engine can be driven by
// fake ticks in tests.
package clock

import "time"

// Clock reports the current time and creates tickers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Real is the system clock.
type Real struct{}

// Now returns the current local time.
func (Real) Now() time.Time { return time.Now() }

// NewTicker wraps time.NewTicker.
//
//nolint:ireturn // Callers depend on the Ticker abstraction.
func (Real) NewTicker(d time.Duration) Ticker {
	return &realTicker{time.NewTicker(d)}
}

// realTicker adapts *time.Ticker to Ticker.
type realTicker struct{ *time.Ticker }

// C returns the tick channel.
func (t *realTicker) C() <-chan time.Time { return t.Ticker.C }
