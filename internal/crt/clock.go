package crt

import "time"

// Clock is the time source used to stamp and age screen points.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic component.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. Used for deterministic stepping in
// tests and headless runs.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
