// Package engine is the application root of the alarm clock.
//
// An Engine owns the alarm registry, the clock ticker, the sound controller
// and the notifier. Run executes a single loop goroutine: every tick and
// every registry operation happens there, so the registry needs no locks.
// Other goroutines (gRPC handlers, the terminal UI) submit commands to the
// loop and wait for the answer. State changes are published as Events.
package engine
