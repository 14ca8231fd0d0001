// Package testutils provides deterministic fakes for the engine's external
// collaborators: a steppable clock, a fee/pause registry, the voting-power
// oracles, and a custody target.
package testutils

import (
	"time"
)

// Clock is a manually stepped time source for deterministic tests.
type Clock struct {
	now time.Time
}

// NewClock starts a clock at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current instant. Pass c.Now as the engine's clock.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to an exact instant.
func (c *Clock) Set(t time.Time) {
	c.now = t
}
