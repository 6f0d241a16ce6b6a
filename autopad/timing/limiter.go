// Package timing paces the harness loop when a monitor wants to run at the
// host's nominal frame rate.
package timing

import "time"

// DefaultFPS matches the frame rate the step scripts are written against.
const DefaultFPS = 60

// Limiter controls frame pacing for the harness loop.
type Limiter interface {
	// WaitForNextFrame blocks until it is time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless runs).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
type TickerLimiter struct {
	ticker   *time.Ticker
	ch       <-chan time.Time
	interval time.Duration
}

// NewTickerLimiter paces frames at the given rate.
func NewTickerLimiter(fps float64) *TickerLimiter {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Duration(float64(time.Second) / fps)
	ticker := time.NewTicker(interval)
	return &TickerLimiter{
		ticker:   ticker,
		ch:       ticker.C,
		interval: interval,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.interval)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
