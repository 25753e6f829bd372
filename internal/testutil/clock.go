package testutil

import (
	"sync"
	"time"
)

// Clock is a controllable time source. Pass Clock.Now wherever a
// func() time.Time is accepted.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock set to now, or to 2025-01-01 14:30 UTC when
// no time is given. The default sits mid-hour so hour truncation is visible.
func NewClock(now ...time.Time) *Clock {
	t := time.Date(2025, 1, 1, 14, 30, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Clock{now: t}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
