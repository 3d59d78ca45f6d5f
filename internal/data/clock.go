package data

import (
	"sync"
	"time"
)

// Clock stamps created_at, updated_at and last_login_at. Values are stored in UTC.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// ManualClock only moves when Advance is called.
type ManualClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{t: t.UTC()}
}

// Now satisfies Clock when passed as a method value.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
