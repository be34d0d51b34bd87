package fare

import (
	"time"
)

// =============================================================================
// CLOCK - The engine's only source of time, always injected
// =============================================================================

// Clock supplies the current instant. The engine calls Now exactly once per
// ride so that every eligibility check within a transaction sees the same
// instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. Use only at the outermost layer.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// =============================================================================
// FAKE CLOCK - Test double with arbitrary time travel
// =============================================================================

// FakeClock is a controllable clock for tests and simulations. It supports
// forward/backward travel and direct hour-of-day manipulation, which the
// boundary tests (exact 5-minute mark, day rollover, window edges) rely on.
type FakeClock struct {
	current time.Time
}

// NewFakeClock starts a fake clock at the given local date and time.
func NewFakeClock(year int, month time.Month, day, hour, minute int) *FakeClock {
	return &FakeClock{current: time.Date(year, month, day, hour, minute, 0, 0, time.Local)}
}

func (c *FakeClock) Now() time.Time { return c.current }

func (c *FakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func (c *FakeClock) AddMinutes(n int) { c.current = c.current.Add(time.Duration(n) * time.Minute) }

func (c *FakeClock) AddHours(n int) { c.current = c.current.Add(time.Duration(n) * time.Hour) }

func (c *FakeClock) AddDays(n int) { c.current = c.current.AddDate(0, 0, n) }

func (c *FakeClock) AddMonths(n int) { c.current = c.current.AddDate(0, n, 0) }

// SetTime keeps the current date but moves the hands to hour:minute.
func (c *FakeClock) SetTime(hour, minute int) {
	c.current = time.Date(c.current.Year(), c.current.Month(), c.current.Day(),
		hour, minute, 0, 0, c.current.Location())
}
